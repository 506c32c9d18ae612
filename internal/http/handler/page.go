package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	chatEnabled bool
}

func NewPageHandler(chatEnabled bool) *PageHandler {
	return &PageHandler{chatEnabled: chatEnabled}
}

// Index serves the single-page UI.
func (h *PageHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

// Meta reports server capabilities the UI adapts to.
func (h *PageHandler) Meta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chat_enabled": h.chatEnabled})
}

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>Voxel Studio</title>
  <style>
    :root { --bg:#0f1117; --panel:#181b24; --line:#2a2e3b; --text:#e6e8ee; --dim:#9aa1b2; --accent:#7c5cff; --ok:#3fbf7f; --err:#e05c5c; }
    * { box-sizing: border-box; }
    body { margin:0; font-family: ui-sans-serif, system-ui, sans-serif; background:var(--bg); color:var(--text); }
    header { padding:14px 20px; border-bottom:1px solid var(--line); display:flex; align-items:baseline; gap:12px; }
    header h1 { margin:0; font-size:18px; }
    header span { color:var(--dim); font-size:13px; }
    main { display:grid; grid-template-columns: 260px 1fr 1fr; gap:16px; padding:16px 20px; max-width:1400px; margin:0 auto; }
    .panel { background:var(--panel); border:1px solid var(--line); border-radius:10px; padding:14px; }
    .panel h2 { margin:0 0 10px; font-size:14px; color:var(--dim); text-transform:uppercase; letter-spacing:.06em; }
    label { display:block; font-size:12px; color:var(--dim); margin:10px 0 4px; }
    input, textarea { width:100%; background:var(--bg); border:1px solid var(--line); border-radius:6px; color:var(--text); padding:7px 9px; font-size:13px; }
    textarea { resize: vertical; }
    button { background:var(--accent); border:0; border-radius:6px; color:#fff; padding:8px 14px; font-size:13px; cursor:pointer; }
    button.secondary { background:transparent; border:1px solid var(--line); color:var(--dim); }
    button:disabled { opacity:.5; cursor:default; }
    #messages { height:380px; overflow-y:auto; display:flex; flex-direction:column; gap:8px; margin-bottom:10px; }
    .msg { padding:8px 11px; border-radius:8px; font-size:13px; white-space:pre-wrap; max-width:85%; }
    .msg.user { background:#232a3d; align-self:flex-end; }
    .msg.assistant { background:#1d2430; align-self:flex-start; }
    .msg.error { background:#3a2026; color:var(--err); align-self:flex-start; }
    .row { display:flex; gap:8px; margin-top:8px; }
    .row input { flex:1; }
    .status { font-size:13px; color:var(--dim); margin-top:10px; min-height:18px; }
    .status.ok { color:var(--ok); }
    .status.err { color:var(--err); }
    .disabled-note { color:var(--err); font-size:13px; }
    video { width:100%; border-radius:8px; margin-top:10px; background:#000; }
  </style>
</head>
<body>
  <header>
    <h1>Voxel Studio</h1>
    <span>Azure OpenAI chat and video generation</span>
  </header>
  <main>
    <section class="panel">
      <h2>Settings</h2>
      <label>Temperature</label>
      <input id="temperature" type="number" min="0" max="1" step="0.05" value="0.7" />
      <label>Top P</label>
      <input id="topP" type="number" min="0.1" max="1" step="0.05" value="1.0" />
      <label>Max tokens</label>
      <input id="maxTokens" type="number" min="1" max="8192" step="50" value="500" />
      <label>Keep last N pairs</label>
      <input id="keepPairs" type="number" min="2" max="50" step="1" value="20" />
      <label>Context for every response</label>
      <textarea id="globalContext" rows="5" placeholder="Audience, tone, constraints..."></textarea>
    </section>

    <section class="panel">
      <h2>Chat</h2>
      <div id="chatDisabled" class="disabled-note" hidden>
        Chat is disabled because the endpoint points to the video jobs API. Use the video generator.
      </div>
      <div id="messages"></div>
      <div class="row">
        <input id="chatInput" placeholder="Message the assistant..." />
        <button id="sendBtn">Send</button>
        <button id="clearBtn" class="secondary">Clear</button>
      </div>
    </section>

    <section class="panel">
      <h2>Video generator</h2>
      <label>Prompt</label>
      <textarea id="videoPrompt" rows="3" placeholder="Describe your video..."></textarea>
      <div class="row">
        <div style="flex:1"><label>Width</label><input id="width" type="number" min="64" max="1080" step="64" value="1080" /></div>
        <div style="flex:1"><label>Height</label><input id="height" type="number" min="64" max="1080" step="64" value="1080" /></div>
        <div style="flex:1"><label>Seconds</label><input id="seconds" type="number" min="1" max="60" step="1" value="5" /></div>
      </div>
      <div class="row"><button id="generateBtn">Generate Video</button></div>
      <div id="videoStatus" class="status"></div>
      <video id="player" controls hidden></video>
      <div class="row"><a id="downloadLink" hidden download>Download video</a></div>
    </section>
  </main>

  <script>
    let sessionID = "";
    let watchTimer = null;

    const $ = (id) => document.getElementById(id);

    function settings() {
      return {
        temperature: parseFloat($("temperature").value),
        top_p: parseFloat($("topP").value),
        max_tokens: parseInt($("maxTokens").value, 10),
        keep_pairs: parseInt($("keepPairs").value, 10),
        global_context: $("globalContext").value,
      };
    }

    function addMessage(kind, text) {
      const div = document.createElement("div");
      div.className = "msg " + kind;
      div.textContent = text;
      $("messages").appendChild(div);
      $("messages").scrollTop = $("messages").scrollHeight;
    }

    async function send() {
      const message = $("chatInput").value.trim();
      if (!message) return;
      $("chatInput").value = "";
      addMessage("user", message);
      $("sendBtn").disabled = true;
      try {
        const res = await fetch("/api/v1/chat", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ session_id: sessionID, message, settings: settings() }),
        });
        const body = await res.json();
        if (!res.ok) {
          addMessage("error", "Error: " + (body.error || res.statusText));
          return;
        }
        sessionID = body.session_id;
        addMessage("assistant", body.reply);
      } catch (err) {
        addMessage("error", "Error: " + err);
      } finally {
        $("sendBtn").disabled = false;
      }
    }

    async function clearChat() {
      if (sessionID) {
        await fetch("/api/v1/chat/" + sessionID, { method: "DELETE" });
      }
      $("messages").innerHTML = "";
    }

    function setVideoStatus(text, cls) {
      const el = $("videoStatus");
      el.textContent = text;
      el.className = "status" + (cls ? " " + cls : "");
    }

    async function generate() {
      const prompt = $("videoPrompt").value.trim();
      if (!prompt) { setVideoStatus("Enter a prompt first.", "err"); return; }
      $("generateBtn").disabled = true;
      $("player").hidden = true;
      $("downloadLink").hidden = true;
      if (watchTimer) clearInterval(watchTimer);
      setVideoStatus("Submitting job...");
      try {
        const res = await fetch("/api/v1/video/jobs", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            prompt,
            width: parseInt($("width").value, 10),
            height: parseInt($("height").value, 10),
            n_seconds: parseInt($("seconds").value, 10),
          }),
        });
        const body = await res.json();
        if (!res.ok) {
          setVideoStatus("Error: " + (body.error || res.statusText), "err");
          $("generateBtn").disabled = false;
          return;
        }
        watch(body.job_id);
      } catch (err) {
        setVideoStatus("Error: " + err, "err");
        $("generateBtn").disabled = false;
      }
    }

    function watch(jobID) {
      setVideoStatus("Job " + jobID + " created. Generating...");
      watchTimer = setInterval(async () => {
        const res = await fetch("/api/v1/video/jobs/" + jobID);
        if (!res.ok) return;
        const job = await res.json();
        if (job.error) {
          clearInterval(watchTimer);
          setVideoStatus("Error: " + job.error, "err");
          $("generateBtn").disabled = false;
          return;
        }
        if (job.has_content) {
          clearInterval(watchTimer);
          const url = "/api/v1/video/jobs/" + jobID + "/content";
          setVideoStatus("Video generated.", "ok");
          $("player").src = url;
          $("player").hidden = false;
          const link = $("downloadLink");
          link.href = url;
          link.hidden = false;
          $("generateBtn").disabled = false;
          return;
        }
        setVideoStatus("Status: " + job.status + "...");
      }, 3000);
    }

    $("sendBtn").addEventListener("click", send);
    $("chatInput").addEventListener("keydown", (e) => { if (e.key === "Enter") send(); });
    $("clearBtn").addEventListener("click", clearChat);
    $("generateBtn").addEventListener("click", generate);

    fetch("/api/v1/meta").then((r) => r.json()).then((meta) => {
      if (!meta.chat_enabled) {
        $("chatDisabled").hidden = false;
        $("chatInput").disabled = true;
        $("sendBtn").disabled = true;
      }
    });
  </script>
</body>
</html>`
