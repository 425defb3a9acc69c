package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
)

// Converter turns a video URL into an MP3 file on local disk.
type Converter interface {
	Convert(ctx context.Context, videoURL string) (*Conversion, error)
}

// ytdlpConverter drives the yt-dlp binary through its Go wrapper. The binary
// fetches the best audio stream and hands it to ffmpeg for MP3 encoding as a
// post-processing step.
type ytdlpConverter struct {
	baseDir string
}

var _ Converter = (*ytdlpConverter)(nil)

func newYTDLPConverter(ctx context.Context, baseDir string) *ytdlpConverter {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		log.Printf("⚠️  yt-dlp not provisioned, conversions will fail until it is available: %v", err)
	}
	return &ytdlpConverter{baseDir: baseDir}
}

func (c *ytdlpConverter) Convert(ctx context.Context, videoURL string) (*Conversion, error) {
	conv := &Conversion{
		ID:        uuid.New().String(),
		URL:       videoURL,
		CreatedAt: time.Now(),
	}

	// Each conversion gets its own scratch directory so concurrent requests
	// for identically titled videos cannot collide on a filename.
	dir := filepath.Join(c.baseDir, conv.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, ConversionTimeout)
	defer cancel()

	dl := ytdlp.New().
		Format(AudioFormatSelector).
		ExtractAudio().
		AudioFormat(AudioCodec).
		AudioQuality(AudioBitrate).
		NoCheckCertificates().
		NoPlaylist().
		NoWarnings().
		PrintJSON().
		Output(filepath.Join(dir, OutputTemplate))

	result, err := dl.Run(runCtx, videoURL)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	var reported string
	if infos, ierr := result.GetExtractedInfo(); ierr == nil && len(infos) > 0 {
		reported = applyExtractedInfo(conv, infos[0])
	}

	if err := locateOutput(conv, dir, reported); err != nil {
		return nil, err
	}
	conv.CompletedAt = time.Now()
	return conv, nil
}

// applyExtractedInfo copies the metadata yt-dlp reported onto the
// conversion and returns the output filename it claims to have written.
func applyExtractedInfo(conv *Conversion, in *ytdlp.ExtractedInfo) string {
	if in.Title != nil {
		conv.Title = *in.Title
	}
	if in.Uploader != nil {
		conv.Uploader = *in.Uploader
	}
	if in.Duration != nil {
		conv.Duration = *in.Duration
	}
	if in.Extension != "" {
		conv.SourceExt = in.Extension
	}
	if in.Filename != nil {
		return *in.Filename
	}
	return ""
}

// locateOutput resolves the produced file and fills in the conversion's
// file fields. The reported filename is tried first; when it is missing or
// stale the scratch directory is globbed. When no output exists at all the
// scratch directory is removed before returning the error.
func locateOutput(conv *Conversion, dir, reported string) error {
	outPath := rewriteToMP3(reported)
	if outPath == "" || !fileExists(outPath) {
		var err error
		outPath, err = findProducedFile(dir)
		if err != nil {
			_ = os.RemoveAll(dir)
			return err
		}
	}
	conv.FilePath = outPath
	conv.Filename = attachmentName(conv.Title, outPath)
	return nil
}

// rewriteToMP3 mirrors what the post-processor does to the filename yt-dlp
// reports for the downloaded stream: the container extension becomes .mp3.
func rewriteToMP3(reported string) string {
	if reported == "" {
		return ""
	}
	ext := filepath.Ext(reported)
	return strings.TrimSuffix(reported, ext) + ".mp3"
}

// findProducedFile is the fallback when the reported filename is missing or
// stale. The scratch directory holds at most one conversion output.
func findProducedFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*."+AudioCodec))
	if err != nil {
		return "", fmt.Errorf("scanning output directory: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s file produced in %s", AudioCodec, dir)
	}
	return matches[0], nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// attachmentName derives the client-facing filename from the reported title,
// falling back to the on-disk name.
func attachmentName(title, outPath string) string {
	name := sanitizeFilename(title)
	if name == "" {
		name = sanitizeFilename(strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath)))
	}
	if name == "" {
		name = "audio"
	}
	return name + "." + AudioCodec
}
