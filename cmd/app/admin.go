package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/repository"
	"simulazioni-backend/internal/service"
)

// createAdmin interactively creates a staff user. Grading routes require
// the staff role and self-registration only produces students, so the
// first grader has to be bootstrapped from the terminal.
func createAdmin(userRepo repository.UserRepository) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("failed to read password: %v", err)
	}

	user := &model.User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: string(password),
		Role:     model.RoleStaff,
	}
	if user.Username == "" || user.Email == "" {
		log.Fatal("username and email are required")
	}

	authService := service.NewAuthService(userRepo)
	if err := authService.Register(user); err != nil {
		log.Fatalf("failed to create staff user: %v", err)
	}
	fmt.Printf("staff user %q created\n", user.Username)
}
