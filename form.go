package main

import "html/template"

// errorPrefix matches the page language; conversion failures are returned as
// plain text with this prefix followed by the raw error string.
const errorPrefix = "حدث خطأ: "

var formTemplate = template.Must(template.New("home").Parse(homePage))

const homePage = `<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head>
    <meta charset="UTF-8">
    <title>محول يوتيوب</title>
    <style>
        body { font-family: sans-serif; text-align: center; padding: 50px; background: #f0f2f5; }
        input { padding: 15px; width: 60%; border-radius: 8px; border: 1px solid #ccc; margin-bottom: 10px; }
        button { padding: 15px 30px; background: #ff0000; color: white; border: none; border-radius: 8px; cursor: pointer; font-weight: bold; }
        button:hover { background: #cc0000; }
    </style>
</head>
<body>
    <h1>تحميل صوت من يوتيوب 🎵</h1>
    <form action="/download" method="post">
        <input type="text" name="url" placeholder="حط اللينك هنا..." required>
        <br>
        <button type="submit">تحميل MP3</button>
    </form>
</body>
</html>
`
