package main

import "time"

// Centralized configuration values
const (
	// HTTP Server
	ListenAddr      = ":10000"
	ShutdownTimeout = 30 * time.Second

	// Audio Output
	AudioFormatSelector = "bestaudio/best"
	AudioCodec          = "mp3"
	AudioBitrate        = "192K"
	OutputDirName       = "ytaudio"
	OutputTemplate      = "%(title)s.%(ext)s"

	// Conversion Slots
	MaxConcurrentConversions = 4
	SlotAcquireWait          = 5 * time.Second
	ConversionTimeout        = 15 * time.Minute

	// Rate Limiting
	RequestsPerSecond = 100
	BurstSize         = 200

	// Redis Configuration
	RedisAddr     = "localhost:6379"
	RedisPassword = ""
	RedisDB       = 0

	// File Retention
	FileRetention   = 24 * time.Hour
	CleanupInterval = 1 * time.Hour
)
