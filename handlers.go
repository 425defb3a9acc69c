package main

import (
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"
)

// handleHome serves the conversion form.
func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, nil); err != nil {
		log.Printf("⚠️  Failed to render form: %v", err)
	}
}

// handleDownload runs the whole pipeline inside the request: read the URL
// field, convert, and stream the MP3 back as an attachment. The URL is not
// validated here; anything the extractor rejects comes back as its error
// text in a plain 200 response.
func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	videoURL := r.PostFormValue("url")
	if videoURL == "" {
		http.Error(w, "Missing video URL", http.StatusBadRequest)
		return
	}

	if conv, ok := s.store.Get(r.Context(), videoURL); ok {
		log.Printf("♻️  Serving cached conversion %s for URL: %s", conv.ID, videoURL)
		s.sendFile(w, conv)
		return
	}

	select {
	case s.slots <- struct{}{}:
	case <-time.After(s.acquireWait):
		http.Error(w, "Server busy, please try again later.", http.StatusServiceUnavailable)
		return
	case <-r.Context().Done():
		return
	}

	log.Printf("🎵 Converting URL: %s", videoURL)
	atomic.AddInt64(&s.activeConversions, 1)
	conv, err := s.converter.Convert(r.Context(), videoURL)
	atomic.AddInt64(&s.activeConversions, -1)
	// The slot covers the conversion only, not the streaming of the result.
	<-s.slots

	if err != nil {
		atomic.AddInt64(&s.failedConversions, 1)
		log.Printf("❌ Conversion failed for URL %s: %v", videoURL, err)
		writeConversionError(w, err)
		return
	}

	atomic.AddInt64(&s.completedConversions, 1)
	atomic.AddInt64(&s.processingNanos, conv.CompletedAt.Sub(conv.CreatedAt).Nanoseconds())
	s.store.Put(r.Context(), conv)
	log.Printf("✅ Conversion %s completed: %s", conv.ID, conv.Filename)

	s.sendFile(w, conv)
}

// sendFile streams a finished conversion as an attachment. The content type
// comes from the file extension.
func (s *server) sendFile(w http.ResponseWriter, conv *Conversion) {
	file, err := os.Open(conv.FilePath)
	if err != nil {
		writeConversionError(w, err)
		return
	}
	defer file.Close()

	ctype := mime.TypeByExtension(filepath.Ext(conv.FilePath))
	if ctype == "" {
		ctype = "audio/mpeg"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": conv.Filename}))
	if info, err := file.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}
	if _, err := io.Copy(w, file); err != nil {
		log.Printf("⚠️  Interrupted while sending %s: %v", conv.Filename, err)
	}
}

// writeConversionError surfaces any pipeline failure the way the form page
// expects: a plain-text 200 body embedding the error string.
func writeConversionError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s%v", errorPrefix, err)
}
