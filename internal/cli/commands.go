package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "studio",
		Short: "Studio - Azure OpenAI chat and video generation",
		Long: `Studio is a terminal client for Azure OpenAI deployments.
It runs an interactive assistant chat and submits video generation jobs,
following each job until the rendered clip is ready to download.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout carries conversation and file output; library logs go to stderr
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			})))
		},
	}

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newVideoCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newChatCmd creates the chat command
func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the configured assistant deployment",
		Long: `Start an interactive chat session against the configured Azure OpenAI
chat deployment. Type 'exit', 'quit' or 'q' to leave the session.
Example: studio chat --context "Answer in one sentence."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			message, _ := cmd.Flags().GetString("message")
			globalContext, _ := cmd.Flags().GetString("context")
			stream, _ := cmd.Flags().GetBool("stream")

			return runChat(message, globalContext, stream)
		},
	}

	cmd.Flags().String("message", "", "Send a single message and print the reply instead of starting a session")
	cmd.Flags().String("context", "", "Extra instructions the assistant follows for every response")
	cmd.Flags().Bool("stream", false, "Print the reply as it is generated")

	return cmd
}

// newVideoCmd creates the video command
func newVideoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Generate a video clip from a text prompt",
		Long: `Submit a video generation job and follow it until the clip is ready.
When --prompt is omitted, an interactive wizard collects the job parameters.
Example: studio video --prompt "a red fox running through snow" --seconds 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := videoParams{}
			params.Prompt, _ = cmd.Flags().GetString("prompt")
			params.Width, _ = cmd.Flags().GetInt("width")
			params.Height, _ = cmd.Flags().GetInt("height")
			params.Seconds, _ = cmd.Flags().GetInt("seconds")
			params.Output, _ = cmd.Flags().GetString("output")

			return runVideo(params)
		},
	}

	cmd.Flags().String("prompt", "", "Video description (the wizard asks when omitted)")
	cmd.Flags().Int("width", defaultWidth, "Frame width in pixels (64-1080, multiple of 64)")
	cmd.Flags().Int("height", defaultHeight, "Frame height in pixels (64-1080, multiple of 64)")
	cmd.Flags().Int("seconds", defaultSeconds, "Clip duration in seconds (1-60)")
	cmd.Flags().String("output", "", "Output file path (default video_<job_id>.mp4)")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Studio v1.0.0")
			fmt.Println("Azure OpenAI chat and video generation")
		},
	}
}
