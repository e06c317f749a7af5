package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/troghx/ocr-credit-report/client"
	"github.com/troghx/ocr-credit-report/config"
	"github.com/troghx/ocr-credit-report/handler"
	"github.com/troghx/ocr-credit-report/service"
)

func main() {
	cfg := config.LoadConfig()

	// Tesseract v5 reads the data path from the environment as well
	os.Setenv("TESSDATA_PREFIX", cfg.TesseractDataPath)

	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	pdfProcessor := service.NewPDFProcessor()

	var analyzer service.TradelineAnalyzer
	if cfg.AnalyzerURL != "" {
		analyzer = client.NewAnalyzerClient(cfg.AnalyzerURL)
		log.Printf("Remote analyzer enabled at %s", cfg.AnalyzerURL)
	}

	extractionService := service.NewExtractionService(
		pdfProcessor,
		func() (service.OcrWorker, error) { return tesseractClient.NewWorker() },
		analyzer,
	)

	var importer *client.ImporterClient
	if cfg.ImporterURL != "" {
		importer = client.NewImporterClient(cfg.ImporterURL)
		log.Printf("Tradeline importer enabled at %s", cfg.ImporterURL)
	}

	reportHandler := handler.NewReportHandler(extractionService, importer)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Credit Report Extraction",
		})
	})

	api := router.Group("/api/v1")
	{
		reports := api.Group("/reports")
		{
			reports.POST("/extract", reportHandler.ExtractReport)
		}
	}

	log.Printf("Starting Credit Report Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
