package api

// homePage is the static chat UI served at the root route.
const homePage = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Alaska Department of Snow — Online Agent</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 900px; margin: 30px auto; padding: 0 12px; }
    .box { border: 1px solid #ddd; border-radius: 12px; padding: 14px; }
    .row { margin: 10px 0; }
    textarea { width: 100%; height: 70px; }
    button { padding: 10px 14px; border-radius: 10px; border: 1px solid #333; background: #111; color: #fff; cursor: pointer; }
    pre { white-space: pre-wrap; background: #f7f7f7; padding: 12px; border-radius: 10px; }
  </style>
</head>
<body>
  <h1>Alaska Department of Snow — Online Agent</h1>
  <div class="box">
    <div class="row">
      <label>Message</label><br/>
      <textarea id="msg" placeholder="Ask a question..."></textarea>
    </div>
    <div class="row">
      <button onclick="send()">Send</button>
    </div>
    <div class="row">
      <label>Answer</label>
      <pre id="out"></pre>
    </div>
  </div>

<script>
async function send(){
  const msg = document.getElementById("msg").value;
  document.getElementById("out").textContent = "Thinking...";
  const r = await fetch("/chat", {
    method: "POST",
    headers: {"Content-Type":"application/json"},
    body: JSON.stringify({message: msg, top_k: 10})
  });
  const j = await r.json();
  document.getElementById("out").textContent = j.answer;
}
</script>
</body>
</html>`
