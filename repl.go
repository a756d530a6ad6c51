package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
)

const (
	historyFile = ".icss_history"
	promptMain  = "icss> "
	promptCont  = "....> "
)

// Session accumulates REPL input into one growing stylesheet. Variables
// assigned in earlier inputs stay visible to later ones.
type Session struct {
	source string
	rules  int
}

// Submit compiles the session with chunk appended. On success chunk
// becomes part of the session and the CSS of the rules it added is
// returned. On failure the session is unchanged.
func (s *Session) Submit(chunk string) (string, error) {
	candidate := s.source + chunk + "\n"
	result, err := Compile([]byte(candidate))
	if err != nil {
		return "", err
	}

	rules := result.Folded.Rules()
	added := &Stylesheet{}
	for _, rule := range rules[s.rules:] {
		added.Items = append(added.Items, rule)
	}
	s.source = candidate
	s.rules = len(rules)
	return Generate(added), nil
}

// CSS returns the output of the whole session.
func (s *Session) CSS() (string, error) {
	result, err := Compile([]byte(s.source))
	if err != nil {
		return "", err
	}
	return result.CSS, nil
}

func (s *Session) Reset() {
	s.source = ""
	s.rules = 0
}

// braceDepth returns the number of '{' in src not yet closed.
func braceDepth(src string) int {
	l := NewLexer([]byte(src))
	depth := 0
	for l.NextToken(); l.CurrTokenType != EOF; l.NextToken() {
		switch l.CurrTokenType {
		case LBRACE:
			depth++
		case RBRACE:
			depth--
		}
	}
	return depth
}

func replCommand(_ []string) int {
	fmt.Println("icss repl - type :quit to exit, :css to print the session, :reset to clear it")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	var session Session
	for {
		code, ok := readBalanced(ln)
		if !ok {
			fmt.Println()
			return 0
		}

		switch strings.TrimSpace(code) {
		case "":
			continue
		case ":quit":
			return 0
		case ":reset":
			session.Reset()
			continue
		case ":css":
			css, err := session.CSS()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Println(css)
			continue
		}

		css, err := session.Submit(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if css != "" {
			fmt.Println(css)
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readBalanced reads lines until every '{' is closed.
func readBalanced(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if braceDepth(b.String()) <= 0 {
			return b.String(), true
		}
	}
}
