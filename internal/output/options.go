package output

import "io"

// Option is a functional option for configuring Printer instances.
type Option func(*Printer)

// WithWriter sets the writer for results. Default is os.Stdout.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.out = writer
		}
	}
}

// WithErrorWriter sets the writer for errors and notices. Default is os.Stderr.
// It is unused in JSON mode, where every record goes to the result writer.
func WithErrorWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.errOut = writer
		}
	}
}

// WithMode configures the printer to operate in a specific output mode.
func WithMode(mode Mode) Option {
	return func(p *Printer) {
		p.mode = mode
	}
}
