package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/stemsi/institute-admin/internal/config"
	"github.com/stemsi/institute-admin/internal/database"
	"github.com/stemsi/institute-admin/internal/export"
	"github.com/stemsi/institute-admin/internal/logger"
	"github.com/stemsi/institute-admin/internal/repository"
)

func main() {
	var entity, format, out string
	flag.StringVar(&entity, "entity", "", "Records to list: students, teachers, courses, exams, payments, users")
	flag.StringVar(&format, "format", "table", "Output format: table or xlsx")
	flag.StringVar(&out, "out", "", "Output file for xlsx (default <entity>-<date>.xlsx)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	provider := database.NewProvider(cfg, log)
	pool, err := provider.Pool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer provider.Close()

	catalog := export.NewCatalog(export.Sources{
		Students: repository.NewStudentRepository(pool, log),
		Teachers: repository.NewTeacherRepository(pool, log),
		Courses:  repository.NewCourseRepository(pool, log),
		Exams:    repository.NewExamRepository(pool, log),
		Payments: repository.NewPaymentRepository(pool, log),
		Users:    repository.NewUserRepository(pool, log),
	})

	load, ok := catalog[entity]
	if !ok {
		color.Red("Unknown entity %q. Choose one of: %s", entity, strings.Join(catalog.Names(), ", "))
		os.Exit(2)
	}

	sheet, err := load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("entity", entity).Msg("Failed to load records")
	}

	switch format {
	case "table":
		color.Yellow("\n%s (%d)", sheet.Name, len(sheet.Rows))
		export.RenderTable(os.Stdout, sheet)
	case "xlsx":
		if out == "" {
			out = fmt.Sprintf("%s-%s.xlsx", entity, time.Now().Format("20060102"))
		}
		f, err := os.Create(out)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create output file")
		}
		if err := export.WriteWorkbook(f, sheet); err != nil {
			_ = f.Close()
			log.Fatal().Err(err).Msg("Failed to write workbook")
		}
		if err := f.Close(); err != nil {
			log.Fatal().Err(err).Msg("Failed to close output file")
		}
		color.Green("Wrote %d %s to %s", len(sheet.Rows), entity, out)
	default:
		color.Red("Unknown format %q (table or xlsx)", format)
		os.Exit(2)
	}
}
