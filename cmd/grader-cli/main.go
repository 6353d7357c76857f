package main

import (
	"context"

	"gradeassist-backend/cmd/grader-cli/commands"
	"gradeassist-backend/lib/telemetry"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	telemetry.InitSlog(false)
	telemetry.SetupFromEnv(context.Background(), "grader-cli")
	commands.ExecuteContext(context.Background())
}
