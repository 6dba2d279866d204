package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"

	"github.com/ve3wwg/prompro/protocol"
)

const (
	consolePrompt   = "prompro> "
	historyFileName = ".prompro_history"
	historySize     = 500
)

// runConsole holds an interactive session with the programmer: each input
// line is sent as a command and the device's reply is echoed until its
// prompt. ":q" or EOF ends the session.
func runConsole(session *protocol.Session) error {
	fmt.Println("Interactive console. Lines are sent to the programmer; :q quits.")

	readLine, closeEditor, err := newLineReader()
	if err != nil {
		return err
	}
	defer closeEditor()

	for {
		line, err := readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		cmd := strings.TrimSpace(line)
		if cmd == ":q" || cmd == ":quit" {
			return nil
		}
		if cmd == "" {
			continue
		}

		if err := session.SendCommand(cmd); err != nil {
			return err
		}
		if err := echoUntilPrompt(session); err != nil {
			return err
		}
	}
}

// newLineReader picks a line source: readline with history when stdin is
// a terminal, a plain scanner for piped input.
func newLineReader() (func() (string, error), func(), error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		scanner := bufio.NewScanner(os.Stdin)
		read := func() (string, error) {
			fmt.Print(consolePrompt)
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return "", err
				}
				return "", io.EOF
			}
			return scanner.Text(), nil
		}
		return read, func() {}, nil
	}

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, historyFileName)
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:                 consolePrompt,
		HistoryFile:            historyPath,
		HistoryLimit:           historySize,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("readline init: %w", err)
	}

	read := func() (string, error) {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				return "", io.EOF
			}
			return "", err
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			rl.SaveToHistory(trimmed)
		}
		return line, nil
	}
	return read, func() { _ = rl.Close() }, nil
}

// echoUntilPrompt prints the device's output until its prompt byte or a
// read timeout (the device has gone quiet without prompting).
func echoUntilPrompt(session *protocol.Session) error {
	for {
		b, err := session.Transport().ReadByte(session.DefaultTimeout())
		if err == protocol.ErrTimeout {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		switch {
		case b == protocol.Prompt:
			fmt.Println()
			return nil
		case b == protocol.CR:
			// the device sends CR LF; the LF is enough
		case b == '\n':
			fmt.Println()
		default:
			fmt.Print(protocol.FormatByte(b))
		}
	}
}
