package processor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/livetrans/internal"
	"codeberg.org/snonux/livetrans/internal/batch"
	"codeberg.org/snonux/livetrans/internal/catalog"
	"codeberg.org/snonux/livetrans/internal/cli"
	"codeberg.org/snonux/livetrans/internal/errorcodes"
	"codeberg.org/snonux/livetrans/internal/gui"
	"codeberg.org/snonux/livetrans/internal/notify"
	"codeberg.org/snonux/livetrans/internal/selection"
	"codeberg.org/snonux/livetrans/internal/session"
	"codeberg.org/snonux/livetrans/internal/translation"
)

// Processor runs the program modes
type Processor struct {
	flags      *cli.Flags
	config     *cli.Config
	logger     *zap.SugaredLogger
	catalog    *catalog.Catalog
	translator translation.Translator
	classifier *errorcodes.Classifier

	out    io.Writer
	errOut io.Writer
}

// NewProcessor creates a processor for the configured backend
func NewProcessor(flags *cli.Flags, config *cli.Config, logger *zap.SugaredLogger) (*Processor, error) {
	translator, err := newTranslator(context.Background(), config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}
	return newProcessor(flags, config, logger, translator)
}

func newProcessor(flags *cli.Flags, config *cli.Config, logger *zap.SugaredLogger, translator translation.Translator) (*Processor, error) {
	classifier, err := errorcodes.New(config.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return &Processor{
		flags:      flags,
		config:     config,
		logger:     logger,
		catalog:    catalog.Default(),
		translator: translator,
		classifier: classifier,
		out:        os.Stdout,
		errOut:     os.Stderr,
	}, nil
}

// ProcessSingleText translates text once and prints the result
func (p *Processor) ProcessSingleText(text string) error {
	sel, err := p.newSelection()
	if err != nil {
		return err
	}
	s, err := p.newSession(sel, notify.NewLogSink(p.logger))
	if err != nil {
		return err
	}
	defer s.Close()

	snap := settle(s, text)
	if snap.Error != "" {
		return fmt.Errorf("translation failed: %s", snap.Error)
	}
	fmt.Fprintln(p.out, snap.Translated)
	return nil
}

// ProcessBatch translates every entry of the batch file
func (p *Processor) ProcessBatch() error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	sel, err := p.newSelection()
	if err != nil {
		return err
	}
	base := sel.Selection()

	s, err := p.newSession(sel, notify.NewLogSink(p.logger))
	if err != nil {
		return err
	}
	defer s.Close()

	// Track statistics
	translatedCount := 0
	errorCount := 0

	for i, entry := range entries {
		pair := base
		if entry.HasPair() {
			pair = selection.Selection{Source: entry.Source, Target: entry.Target}
		}
		if err := sel.Set(pair); err != nil {
			fmt.Fprintf(p.errOut, "Error in line %d: %v\n", entry.Line, err)
			errorCount++
			continue
		}

		fmt.Fprintf(p.out, "\n[%d/%d] %s\n", i+1, len(entries), entry.Text)

		snap := settle(s, entry.Text)
		if snap.Error != "" {
			fmt.Fprintf(p.errOut, "Error in line %d: %s\n", entry.Line, snap.Error)
			errorCount++
			continue
		}
		fmt.Fprintf(p.out, "  %s>%s: %s\n", snap.Source, snap.Target, snap.Translated)
		translatedCount++
	}

	// Print summary
	fmt.Fprintf(p.out, "\n=== Batch Summary ===\n")
	fmt.Fprintf(p.out, "Total texts: %d\n", len(entries))
	fmt.Fprintf(p.out, "Translated: %d\n", translatedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.out, "=====================\n")

	if errorCount > 0 && translatedCount == 0 {
		return fmt.Errorf("no text of %s could be translated", p.flags.BatchFile)
	}
	return nil
}

const interactiveHelp = `Type text and press Enter to translate it.
Commands:
  :source <code>   translate from <code> (":source auto" detects the language)
  :target <code>   translate into <code>
  :auto            detect the source language again
  :langs           list languages
  :help            show this help
  :quit            exit`

// RunInteractive reads lines from in and translates each of them. Changing
// the language pair translates the last line again.
func (p *Processor) RunInteractive(in io.Reader) error {
	sel, err := p.newSelection()
	if err != nil {
		return err
	}

	sink := notify.NewAsync(notify.Multi(notify.NewWriterSink(p.errOut), notify.NewLogSink(p.logger)), 0, p.logger)
	defer sink.Close()

	s, err := p.newSession(sel, sink)
	if err != nil {
		return err
	}
	defer s.Close()

	sel.OnChange(func(selection.Selection) {
		s.Handle(session.SelectionChanged{})
	})

	fmt.Fprintf(p.out, "livetrans %s, :help for commands\n", internal.Version)

	var printed uint64
	show := func() {
		s.Wait()
		snap := s.Snapshot()
		if snap.Version == printed {
			return
		}
		printed = snap.Version
		if snap.Error == "" && snap.Translated != "" {
			fmt.Fprintf(p.out, "%s>%s: %s\n", snap.Source, snap.Target, snap.Translated)
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(p.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, ":") {
			s.Handle(session.Settled{Text: line})
			show()
			continue
		}

		quit, err := p.runCommand(sel, line)
		if err != nil {
			sink.Notify(err.Error(), notify.Error)
			continue
		}
		if quit {
			fmt.Fprintln(p.out)
			return nil
		}
		show()
	}
	fmt.Fprintln(p.out)

	return scanner.Err()
}

// runCommand applies a ':' command and reports whether to quit
func (p *Processor) runCommand(sel *selection.Model, line string) (bool, error) {
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true, nil
	case ":help":
		fmt.Fprintln(p.out, interactiveHelp)
	case ":langs":
		p.ListLanguages(p.out)
	case ":auto":
		return false, sel.SetSource(selection.Unset)
	case ":source":
		if arg == "" {
			return false, fmt.Errorf(":source needs a language code")
		}
		if arg == "auto" {
			arg = selection.Unset
		}
		return false, sel.SetSource(arg)
	case ":target":
		if arg == "" {
			return false, fmt.Errorf(":target needs a language code")
		}
		return false, sel.SetTarget(arg)
	default:
		return false, fmt.Errorf("unknown command %s, try :help", fields[0])
	}
	return false, nil
}

// ListLanguages prints the source languages with their allowed targets
func (p *Processor) ListLanguages(w io.Writer) {
	ListLanguages(w, p.catalog)
}

// ListLanguages prints the languages of c. It needs no backend, so the
// command line can call it before credentials are checked.
func ListLanguages(w io.Writer, c *catalog.Catalog) {
	fmt.Fprintf(w, "%-6s %s:", "auto", c.DetectTitle())
	for _, l := range c.DefaultTargets() {
		fmt.Fprintf(w, " %s", l.ID)
	}
	fmt.Fprintln(w)

	for _, entry := range c.Entries() {
		fmt.Fprintf(w, "%-6s %s (%s):", entry.ID, entry.Title, catalog.DisplayName(entry.ID, "en"))
		for _, l := range entry.Targets {
			fmt.Fprintf(w, " %s", l.ID)
		}
		fmt.Fprintln(w)
	}
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	config, err := p.guiConfig()
	if err != nil {
		return err
	}

	app, err := gui.New(config)
	if err != nil {
		return fmt.Errorf("failed to start GUI: %w", err)
	}
	app.Run()

	return nil
}

// guiConfig preselects the pair given with --source and --target
func (p *Processor) guiConfig() (*gui.Config, error) {
	sel, err := p.newSelection()
	if err != nil {
		return nil, err
	}

	return &gui.Config{
		Catalog:       p.catalog,
		Classifier:    p.classifier,
		Logger:        p.logger,
		Debounce:      p.config.Debounce,
		InitialTarget: p.config.HomeLanguage,
		Selection:     sel,
		NewSession:    p.newSession,
	}, nil
}

// newSelection starts from the source and target given on the command line
func (p *Processor) newSelection() (*selection.Model, error) {
	sel := selection.New(p.catalog, p.config.HomeLanguage)
	if p.flags.Source != "" {
		if err := sel.SetSource(p.flags.Source); err != nil {
			return nil, err
		}
	}
	if p.flags.Target != "" {
		if err := sel.SetTarget(p.flags.Target); err != nil {
			return nil, err
		}
	}
	return sel, nil
}

func (p *Processor) newSession(sel session.SelectionSource, sink notify.Sink) (*session.Session, error) {
	return session.New(session.Config{
		HomeLanguage:      p.config.HomeLanguage,
		SecondaryLanguage: p.config.SecondaryLanguage,
		Timeout:           p.config.Timeout,
	}, session.Dependencies{
		Translator: p.translator,
		Selection:  sel,
		Classifier: p.classifier,
		Sink:       sink,
		Logger:     p.logger,
	})
}

// settle runs text through the session and waits for the outcome
func settle(s *session.Session, text string) session.Snapshot {
	s.Handle(session.Settled{Text: text})
	s.Wait()
	return s.Snapshot()
}
