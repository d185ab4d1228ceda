package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// setupSlog installs the default logger. Terminals get the text handler,
// everything else (containers, files) gets JSON.
func setupSlog(w io.Writer, level slog.Level) {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true, //adds file name and line number
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		handler = slog.NewTextHandler(w, opts)
	}

	//Intialise new logger and set it as default for the server
	slog.SetDefault(slog.New(handler))
}
