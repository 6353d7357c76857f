package main

import (
	"context"
	"os"

	"gradeassist-backend/api"
	"gradeassist-backend/lib/configutil"
	"gradeassist-backend/lib/filestore"
	"gradeassist-backend/lib/scoring"
	"gradeassist-backend/lib/serviceutil"
	"gradeassist-backend/lib/telemetry"
	"gradeassist-backend/services/grader"

	"github.com/joho/godotenv"
)

type ScoringConfig struct {
	ApiKey string `json:"api_key"`
	Model  string `json:"model"`
}

type Config struct {
	Port    int  `json:"port"`
	Verbose bool `json:"verbose"`
	// base url of the moodle deployment being graded against
	MoodleBaseUrl    string        `json:"moodle_base_url"`
	ScoreConcurrency int           `json:"score_concurrency"`
	FileStorageDir   string        `json:"file_storage_dir"`
	Scoring          ScoringConfig `json:"scoring"`
}

func main() {
	ctx := serviceutil.SignalContext()

	// optional, carries GEMINI_API_KEY in development
	godotenv.Load()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8000
	}
	if config.FileStorageDir == "" {
		config.FileStorageDir = "file_storage"
	}

	telemetry.InitSlog(config.Verbose)

	t, err := telemetry.SetupFromEnv(ctx, "gradeassist")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	apiKey := config.Scoring.ApiKey
	if env := os.Getenv("GEMINI_API_KEY"); env != "" {
		apiKey = env
	}
	scorer, err := scoring.NewGeminiScorer(apiKey, config.Scoring.Model)
	if err != nil {
		serviceutil.Fatal("failed to create scorer", err)
	}

	files, err := filestore.New(config.FileStorageDir)
	if err != nil {
		serviceutil.Fatal("failed to create file storage", err)
	}

	graderService := grader.NewService(grader.Options{
		BaseUrl:          config.MoodleBaseUrl,
		Scorer:           scorer,
		ScoreConcurrency: config.ScoreConcurrency,
	})

	router := api.NewRouter(api.Deps{
		Grader: graderService,
		Files:  files,
	})
	go serviceutil.StartHttpServer(config.Port, router)

	<-ctx.Done()
}
