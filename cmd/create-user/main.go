package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/stemsi/institute-admin/internal/apperror"
	"github.com/stemsi/institute-admin/internal/config"
	"github.com/stemsi/institute-admin/internal/database"
	"github.com/stemsi/institute-admin/internal/logger"
	"github.com/stemsi/institute-admin/internal/model"
	"github.com/stemsi/institute-admin/internal/repository"
	"github.com/stemsi/institute-admin/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	provider := database.NewProvider(cfg, log)
	pool, err := provider.Pool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer provider.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	// Account creation needs hashing only, so sessions are never touched.
	userRepo := repository.NewUserRepository(pool, log)
	authService, err := service.NewAuthService(cfg, userRepo, nil, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}
	userService := service.NewUserService(userRepo, authService, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	color.Cyan("=== Create New User ===")

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		color.Red("Error: Username must be at least 3 characters")
		return
	}

	fmt.Print("Enter Email (optional): ")
	emailStr, _ := reader.ReadString('\n')
	var email *string
	if e := strings.TrimSpace(emailStr); e != "" {
		email = &e
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		color.Red("Error reading password")
		return
	}
	password := string(bytePassword)
	if len(password) < 8 {
		color.Red("Error: Password must be at least 8 characters")
		return
	}

	fmt.Print("Enter Role ID (1=admin, 2=teacher, 3=accountant, default 1): ")
	roleIDStr, _ := reader.ReadString('\n')
	roleIDStr = strings.TrimSpace(roleIDStr)
	roleID := model.RoleAdmin
	if roleIDStr != "" {
		p, err := strconv.Atoi(roleIDStr)
		if err != nil || model.RoleName(p) == "unknown" {
			color.Red("Error: Role ID must be 1, 2 or 3")
			return
		}
		roleID = p
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	u, err := userService.Create(ctx, model.CreateUserRequest{
		Username: username,
		Password: password,
		Email:    email,
		RoleID:   roleID,
	})
	if errors.Is(err, apperror.ErrDuplicate) {
		color.Red("Error: username '%s' is already taken", username)
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	color.Green("\nSuccess! User '%s' (%s) created with ID: %d", u.Username, model.RoleName(u.RoleID), u.ID)
}
