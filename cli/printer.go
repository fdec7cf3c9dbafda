package cli

import (
	"fmt"
	"io"
	"os"
)

type Printer struct {
	out io.Writer
}

func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

func (p *Printer) Redirect(writer io.Writer) {
	p.out = writer
}

// Writer returns the current destination, for components that need an [io.Writer] of user-visible output.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Write allows a [Printer] to be used as an [io.Writer], following any later [Printer.Redirect].
func (p *Printer) Write(data []byte) (int, error) {
	return p.out.Write(data)
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p.out, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}
