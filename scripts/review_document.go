package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

func main() {
	var (
		filePath  = flag.String("file", "", "resume file (.pdf, .docx or .txt)")
		role      = flag.String("role", "", "target role")
		seniority = flag.String("seniority", "", "seniority hint ("+strings.Join(models.Seniorities, ", ")+")")
		jdPath    = flag.String("jd", "", "file holding the job description")
		model     = flag.String("model", "", "model override")
		textOnly  = flag.Bool("text", false, "print the extracted text and exit")
		summary   = flag.Bool("summary", false, "print scores and action items instead of JSON")
	)
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	log := config.NewLogger(cfg)
	log.SetOutput(os.Stderr)
	if !cfg.EnvFileLoaded {
		log.Debug("No .env file found. Using environment and default values.")
	}

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.WithError(err).Fatal("Failed to read resume file")
	}

	doc, err := services.LoadDocument(filepath.Base(*filePath), data)
	if err != nil {
		log.WithError(err).Fatal("Unsupported resume file")
	}

	extractor := services.NewDefaultTextExtractor()

	if *textOnly {
		text, err := extractor.ExtractText(doc)
		if err != nil {
			log.WithError(err).Fatal("Failed to extract text")
		}
		fmt.Println(text)
		return
	}

	if !models.KnownSeniority(*seniority) {
		log.WithField("seniority", *seniority).Warn("Unknown seniority, passing it to the prompt as is")
	}

	req := models.ReviewRequest{
		TargetRole: *role,
		Seniority:  *seniority,
		Model:      *model,
	}
	if *jdPath != "" {
		jd, err := os.ReadFile(*jdPath)
		if err != nil {
			log.WithError(err).Fatal("Failed to read job description")
		}
		req.JobDescription = string(jd)
	}

	completion, err := services.NewCompletionClient(cfg.LLM, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize completion client")
	}

	reviewService := services.NewReviewService(extractor, completion, log)

	log.WithFields(logrus.Fields{
		"file":     doc.Filename,
		"kind":     doc.Kind,
		"provider": completion.Name(),
	}).Info("Reviewing document")

	result, err := reviewService.ReviewDocument(context.Background(), doc, req)
	if err != nil {
		log.WithError(err).Fatal(services.PublicMessage(err))
	}

	if *summary {
		shape, err := models.ShapeOf(result)
		if err != nil {
			log.WithError(err).Warn("Some review fields could not be read")
		}
		if err := shape.WriteSummary(os.Stdout); err != nil {
			log.WithError(err).Fatal("Failed to write summary")
		}
		return
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.WithError(err).Fatal("Failed to write result")
	}
}
