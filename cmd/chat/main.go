package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/l-pommeret/RAG-DiBiSo/internal/bootstrap"
	"github.com/l-pommeret/RAG-DiBiSo/internal/config"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/database"

	"github.com/fatih/color"
)

const maxShownSources = 3

// Interactive REPL against the assistant, sharing the full pipeline with
// the REST server.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	ctx := context.Background()

	title := color.New(color.FgCyan, color.Bold)
	prompt := color.New(color.FgGreen, color.Bold)
	answerColor := color.New(color.FgWhite)
	sourceColor := color.New(color.FgYellow)

	title.Println("Assistant des bibliothèques de l'Université Paris-Saclay")
	fmt.Println("Posez votre question (quit, exit ou q pour quitter)")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("Vous> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "quit", "exit", "q":
			fmt.Println("Au revoir !")
			return
		}

		res, err := container.AssistantService.Ask(ctx, question)
		if err != nil {
			color.Red("Erreur: %v", err)
			continue
		}

		fmt.Println()
		answerColor.Println(res.Answer)

		if len(res.Sources) > 0 {
			fmt.Println()
			sourceColor.Println("Sources:")
			for i, src := range res.Sources {
				if i >= maxShownSources {
					break
				}
				label := src.Title
				if label == "" {
					label = src.Source
				}
				if src.URL != "" {
					sourceColor.Printf("  %d. %s (%s)\n", i+1, label, src.URL)
				} else {
					sourceColor.Printf("  %d. %s\n", i+1, label)
				}
			}
		}
		fmt.Println()
	}
}
