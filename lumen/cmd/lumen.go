// Command-line interface for asking Lumen questions without the HTTP server
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"lumen/lumen/agents/core"
	"lumen/lumen/agents/setup"
	"lumen/lumen/config"
	"lumen/lumen/controllers"
	"lumen/lumen/utils/color"
	"lumen/lumen/utils/logging"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError("logger init: "+err.Error()))
		os.Exit(1)
	}
	defer logging.Sync()

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.Disable()
	}

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(err.Error()))
		os.Exit(1)
	}

	agents, err := setup.Build(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(err.Error()))
		os.Exit(1)
	}
	defer agents.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch args[0] {
	case "ask":
		if len(args) < 2 {
			usage()
			os.Exit(1)
		}
		if !ask(ctx, agents.Pipeline, strings.Join(args[1:], " ")) {
			os.Exit(1)
		}
	case "chat":
		repl(ctx, agents.Pipeline)
	case "describe":
		if len(args) < 2 {
			usage()
			os.Exit(1)
		}
		if !describe(ctx, agents, args[1], strings.Join(args[2:], " ")) {
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Lumen CLI usage:")
	fmt.Println("  lumen ask <question>             # answer one question")
	fmt.Println("  lumen chat                       # interactive session")
	fmt.Println("  lumen describe <image> [question] # analyze a local image")
}

func ask(ctx context.Context, p *core.Pipeline, question string) bool {
	res, err := p.RunWithProgress(ctx, question, func(step core.Step, detail string) {
		line := "… " + string(step)
		if detail != "" {
			line += ": " + detail
		}
		fmt.Println(color.ColorStep(line))
	})
	if err != nil {
		logging.ErrorLogger.Error("cli question failed", zap.Error(err))
		fmt.Println(color.ColorError(controllers.PublicError(err)))
		return false
	}

	fmt.Println()
	fmt.Println(color.ColorAnswer(res.Answer))
	if res.WebSearchPerformed && res.SearchQueryUsed != nil {
		fmt.Println()
		fmt.Println(color.ColorInfo("Searched for: " + *res.SearchQueryUsed))
	}
	for i, s := range res.Sources {
		fmt.Printf("%s %s\n", color.ColorSource(fmt.Sprintf("[%d]", i+1)), s.Title)
		fmt.Println("    " + color.ColorSource(s.URL))
	}
	return true
}

func repl(ctx context.Context, p *core.Pipeline) {
	fmt.Println(color.ColorInfo("Lumen is ready. Type a question, or 'exit' to quit."))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.ColorPrompt("lumen> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			break
		}
		if line == "" {
			continue
		}
		ask(ctx, p, line)
		fmt.Println()
		if ctx.Err() != nil {
			break
		}
	}
}

func describe(ctx context.Context, agents *setup.Agents, path, question string) bool {
	mime, ok := controllers.MimeTypeFor(path)
	if !ok {
		fmt.Println(color.ColorError(controllers.PublicError(controllers.ErrUnsupportedFormat)))
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(color.ColorError(err.Error()))
		return false
	}
	if strings.TrimSpace(question) == "" {
		question = agents.Analyzer.DefaultQuestion()
	}
	fmt.Println(color.ColorStep("… analyzing " + path))
	analysis, err := agents.Analyzer.Analyze(ctx, data, mime, question)
	if err != nil {
		logging.ErrorLogger.Error("cli image analysis failed", zap.Error(err))
		fmt.Println(color.ColorError(controllers.PublicError(err)))
		return false
	}
	fmt.Println()
	fmt.Println(color.ColorWarning(question))
	fmt.Println(color.ColorAnswer(analysis))
	return true
}
