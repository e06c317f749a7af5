package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	AnalyzerURL       string
	ImporterURL       string
	MaxFileSize       int64
}

const defaultMaxFileSize = 32 * 1024 * 1024 // 32 MB

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	maxFileSize := int64(defaultMaxFileSize)
	if raw := os.Getenv("MAX_FILE_SIZE"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			maxFileSize = v
		}
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		AnalyzerURL:       os.Getenv("ANALYZER_URL"),
		ImporterURL:       os.Getenv("IMPORTER_URL"),
		MaxFileSize:       maxFileSize,
	}
}
