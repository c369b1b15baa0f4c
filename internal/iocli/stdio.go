package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio reads from a terminal (or pipe) and writes to out.
type Stdio struct {
	in     *os.File
	reader *bufio.Reader
	out    io.Writer
}

// NewStdio returns IO bound to os.Stdin and os.Stdout.
func NewStdio() IO {
	return NewFileIO(os.Stdin, os.Stdout)
}

// NewFileIO returns IO reading from in and writing to out.
func NewFileIO(in *os.File, out io.Writer) *Stdio {
	return &Stdio{in: in, reader: bufio.NewReader(in), out: out}
}

func (s *Stdio) Println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword читает без эха, если in - терминал; иначе как обычную строку
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	fd := int(s.in.Fd())
	if !term.IsTerminal(fd) {
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
