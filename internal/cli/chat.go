package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"voxel.app/studio/core/config"
	"voxel.app/studio/internal/chat"
)

func runChat(message, globalContext string, stream bool) error {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeStudio)
	if err != nil {
		return err
	}

	if !cfg.ChatEnabled() {
		return fmt.Errorf("chat is disabled: the configured endpoint points to the video jobs API (set AZURE_OPENAI_ENDPOINT to a chat-capable resource)")
	}
	if cfg.Chat.Deployment == "" {
		return fmt.Errorf("chat deployment is not configured (set AZURE_OPENAI_DEPLOYMENT_NAME)")
	}

	client, err := chat.NewClient(chat.Config{
		APIKey:     cfg.Azure.APIKey,
		Endpoint:   cfg.Azure.Endpoint,
		APIVersion: cfg.Azure.APIVersion,
		Deployment: cfg.Chat.Deployment,
	})
	if err != nil {
		return err
	}

	opts := chat.Options{
		GlobalContext: globalContext,
		Temperature:   cfg.Chat.Temperature,
		TopP:          cfg.Chat.TopP,
		MaxTokens:     cfg.Chat.MaxTokens,
	}

	if message != "" {
		return sendOnce(ctx, client, opts, message, stream)
	}

	return chatLoop(ctx, client, opts, cfg.Chat.KeepPairs, stream)
}

// sendOnce handles --message. Script-friendly: only the reply goes to stdout.
func sendOnce(ctx context.Context, client *chat.Client, opts chat.Options, message string, stream bool) error {
	transcript := chat.Transcript{}
	transcript.Append(chat.RoleUser, message)

	if stream {
		_, err := client.Stream(ctx, transcript, opts, func(delta string) {
			fmt.Print(delta)
		})
		fmt.Println()
		return err
	}

	reply, err := client.Complete(ctx, transcript, opts)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func chatLoop(ctx context.Context, client *chat.Client, opts chat.Options, keepPairs int, stream bool) error {
	fmt.Println(titleStyle.Render("Studio Chat"))
	fmt.Printf("Connected to %s. Type 'exit', 'quit' or 'q' to leave.\n\n", client.Deployment())

	transcript := chat.Transcript{}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("You:") + " ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "exit", "quit", "q":
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		}

		transcript.Append(chat.RoleUser, input)
		transcript = transcript.Prune(keepPairs)

		reply, err := send(ctx, client, transcript, opts, stream)
		if err != nil {
			// Keep the transcript consistent: the failed turn is rolled back
			transcript.DropLast()
			displayError(err.Error())
			continue
		}

		transcript.Append(chat.RoleAssistant, reply)
		fmt.Println()
	}

	return scanner.Err()
}

func send(ctx context.Context, client *chat.Client, transcript chat.Transcript, opts chat.Options, stream bool) (string, error) {
	if !stream {
		reply, err := client.Complete(ctx, transcript, opts)
		if err != nil {
			return "", err
		}
		fmt.Println(assistantStyle.Render("Assistant:") + " " + reply)
		return reply, nil
	}

	fmt.Print(assistantStyle.Render("Assistant:") + " ")
	reply, err := client.Stream(ctx, transcript, opts, func(delta string) {
		fmt.Print(delta)
	})
	fmt.Println()
	return reply, err
}
