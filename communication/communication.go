package communication

import (
	"bufio"
	"fmt"
	"io"
	"morris/game"
	"strings"
)

// Communicator is an interface that abstracts the referee connection.
type Communicator interface {
	// ReadLine returns the next input line without its line terminator, or
	// io.EOF once the input is exhausted.
	ReadLine() (string, error)
	// SendMove writes a move made by mover and flushes it immediately.
	SendMove(move game.Move, mover game.Color) error
}

type stdioCommunicator struct {
	reader *bufio.Reader
	writer *bufio.Writer
}

// NewStdio talks the line protocol over r and w, usually os.Stdin and os.Stdout.
func NewStdio(r io.Reader, w io.Writer) Communicator {
	return &stdioCommunicator{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
	}
}

func (c *stdioCommunicator) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		// A final line without a terminator still counts
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *stdioCommunicator) SendMove(move game.Move, mover game.Color) error {
	if _, err := fmt.Fprintln(c.writer, FormatMove(move, mover)); err != nil {
		return fmt.Errorf("write move: %w", err)
	}
	if err := c.writer.Flush(); err != nil {
		return fmt.Errorf("flush move: %w", err)
	}
	return nil
}
