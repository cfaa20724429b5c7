package main

import (
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/maxsupermanhd/lac"
	"github.com/natefinch/lumberjack"
)

func createLogger(cfg *lac.Conf) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename: cfg.GetDSString("./logs/WorldRaster.log", "logs_path"),
		MaxSize:  10,
		Compress: true,
	}
}

// setupLogging sends standard logger to both rotated file and stdout,
// lines are prefixed with short run id to tell runs apart in the file
func setupLogging(cfg *lac.Conf, runID uuid.UUID) {
	log.SetOutput(io.MultiWriter(createLogger(cfg), os.Stdout))
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetPrefix("[" + runID.String()[:8] + "] ")
}
