// Command leadctl submits a single lead, probes the lead API and downloads
// the brochure using the same pipeline as the site's forms.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"leadcapture_frontend/internal/leads/client"
	"leadcapture_frontend/internal/leads/domain"
	"leadcapture_frontend/internal/leads/validation"
	"leadcapture_frontend/platform/apperr"
	"leadcapture_frontend/platform/config"
	"leadcapture_frontend/platform/logger"
	"leadcapture_frontend/platform/phone"
)

const usage = `usage: leadctl <command> [flags]

commands:
  submit     validate and submit one lead
  health     check that the lead API is reachable
  brochure   download the project brochure
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.NewWithWriter(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, log, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	apiClient := client.NewFromConfig(cfg, log)

	var err error
	switch args[0] {
	case "submit":
		err = runSubmit(ctx, cfg, apiClient, args[1:], stdout, stderr)
	case "health":
		err = apiClient.Ping(ctx)
		if err == nil {
			fmt.Fprintf(stdout, "%s reachable\n", apiClient.BaseURL())
		}
	case "brochure":
		err = runBrochure(ctx, cfg, apiClient, args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			fmt.Fprintln(stderr, appErr.Message)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func runSubmit(ctx context.Context, cfg *config.Config, apiClient *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	form := fs.String("form", validation.VariantContactUs, "form variant to submit as")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	mobile := fs.String("phone", "", "mobile number")
	message := fs.String("message", "", "message")
	budget := fs.String("budget", "", "budget range (plot form)")
	inquiry := fs.String("inquiry", "", "inquiry type (plot form)")
	plot := fs.String("plot", "", "plot number (plot form)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	variants, err := validation.LoadVariants(cfg.GetFormsConfigFile())
	if err != nil {
		return fmt.Errorf("load form variants: %w", err)
	}
	v, ok := variants[*form]
	if !ok {
		return fmt.Errorf("unknown form %q (have %v)", *form, validation.Names(variants))
	}
	if v.RequirePlot {
		v = v.WithPlot(*plot)
	}

	engine, err := validation.NewEngine(nil)
	if err != nil {
		return err
	}
	in, err := engine.Validate(v, domain.Fields{
		domain.FieldFullName:    *name,
		domain.FieldEmail:       *email,
		domain.FieldPhone:       *mobile,
		domain.FieldMessage:     *message,
		domain.FieldBudgetRange: *budget,
		domain.FieldInquiryType: *inquiry,
	})
	if err != nil {
		return err
	}

	res, err := apiClient.Submit(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "submitted %s lead for %s (%s) to %s in %s\n",
		in.Source, logger.MaskEmail(in.Email), phone.NormalizeE164(in.Phone), res.Endpoint, res.Latency.Round(time.Millisecond))
	if res.Message != "" {
		fmt.Fprintln(stdout, res.Message)
	}
	return nil
}

func runBrochure(ctx context.Context, cfg *config.Config, apiClient *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("brochure", flag.ContinueOnError)
	fs.SetOutput(stderr)

	rawURL := fs.String("url", client.JoinURL(cfg.GetSiteOrigin(), cfg.GetBrochureURL()), "brochure location")
	out := fs.String("out", "", "output file (default: the brochure's file name)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if u, err := url.Parse(*rawURL); err != nil || !u.IsAbs() {
		return fmt.Errorf("brochure url %q is not absolute: set SITE_ORIGIN or pass -url", *rawURL)
	}

	dest := *out
	if dest == "" {
		dest = path.Base(*rawURL)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	n, err := apiClient.DownloadBrochure(ctx, *rawURL, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close %s: %w", dest, closeErr)
	}
	if err != nil {
		_ = os.Remove(dest)
		return err
	}
	fmt.Fprintf(stdout, "saved %s (%d bytes)\n", dest, n)
	return nil
}
