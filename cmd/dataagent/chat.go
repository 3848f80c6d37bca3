package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tailored-agentic-units/dataagent/kernel"
)

// runner is the part of the kernel the prompt loop needs.
type runner interface {
	Run(ctx context.Context, question string) *kernel.Result
}

var exitWords = map[string]bool{"quit": true, "exit": true, "q": true}

// answer runs one question and prints the query (if any) and the answer.
func answer(ctx context.Context, out io.Writer, r runner, question string) *kernel.Result {
	fmt.Fprintln(out, questionStyle.Render("Question: ")+question)

	result := r.Run(ctx, question)
	if result.Query != "" {
		fmt.Fprintln(out, queryStyle.Render("Query: "+result.Query))
	}

	style := answerStyle
	if result.ToolResult != nil && !result.ToolResult.Success {
		style = errorStyle
	}
	fmt.Fprintln(out, style.Render("Answer: ")+result.Response)
	fmt.Fprintln(out, rule())
	return result
}

// interactive reads questions line by line until EOF or an exit word.
func interactive(ctx context.Context, in io.Reader, out io.Writer, r runner) error {
	fmt.Fprintln(out, mutedStyle.Render("Ask a question about the sales data (quit, exit or q to leave)."))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, questionStyle.Render("> "))
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if exitWords[strings.ToLower(line)] {
			break
		}
		if line == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		answer(ctx, out, r, line)
	}

	fmt.Fprintln(out, mutedStyle.Render("Goodbye."))
	return scanner.Err()
}
