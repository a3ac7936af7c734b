package sendservice

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/RobsonDevCode/growmate-probe/internal/clients"
	tablewriterservice "github.com/RobsonDevCode/growmate-probe/internal/cmdLineWriters/tablewriter"
	"github.com/RobsonDevCode/growmate-probe/internal/extensions"
	excelexportservice "github.com/RobsonDevCode/growmate-probe/internal/services/excelExportService"
	payloadreaderservice "github.com/RobsonDevCode/growmate-probe/internal/services/payloadReaderService"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

type SendOptions struct {
	PayloadPath string
	Target      string
	Url         string
	Pretty      bool
	Export      bool
	ExportDir   string
}

type SendService interface {
	Send(ctx context.Context, options SendOptions) error
}

type SendProcessor struct {
	clientProvider clients.AdvisoryClientProvider
	payloadReader  payloadreaderservice.PayloadReaderService
	out            io.Writer
	errOut         io.Writer
	logger         *zap.Logger
}

func NewSendProcessor(clientProvider clients.AdvisoryClientProvider,
	payloadReader payloadreaderservice.PayloadReaderService,
	out io.Writer,
	errOut io.Writer,
	logger *zap.Logger) *SendProcessor {
	return &SendProcessor{
		clientProvider: clientProvider,
		payloadReader:  payloadReader,
		out:            out,
		errOut:         errOut,
		logger:         logger,
	}
}

// Send posts the payload file once. The file is read before the target is
// contacted, and the body is written unchanged whatever the status.
func (s *SendProcessor) Send(ctx context.Context, options SendOptions) error {
	payload, err := s.payloadReader.ReadPayload(options.PayloadPath)
	if err != nil {
		return err
	}

	client, err := s.clientProvider.ForTarget(options.Target, options.Url)
	if err != nil {
		return err
	}

	result, err := client.SendAdvisory(ctx, payload)
	if err != nil {
		return err
	}

	s.logger.Debug("advisory request completed",
		zap.String("url", result.Url),
		zap.Int("status", result.StatusCode),
		zap.Duration("latency", result.Latency))

	if !options.Pretty && !options.Export {
		if _, err := s.out.Write(result.Body); err != nil {
			return fmt.Errorf("error writing response body: %w", err)
		}
		return nil
	}

	response, ok := extensions.DecodeAdvisory(result.Body)
	if !ok {
		s.logger.Warn("response is not an advisory document, writing raw body", zap.Int("status", result.StatusCode))
		if _, err := s.out.Write(result.Body); err != nil {
			return fmt.Errorf("error writing response body: %w", err)
		}
		return nil
	}

	if options.Pretty {
		fmt.Fprintf(s.out, "%s %s\n", color.CyanString("HTTP %d", result.StatusCode), result.Url)
		tablewriterservice.DisplayAdvisory(s.out, response)
	} else if _, err := s.out.Write(result.Body); err != nil {
		return fmt.Errorf("error writing response body: %w", err)
	}

	if options.Export {
		dir := options.ExportDir
		if dir == "" {
			dir = excelexportservice.SaveFileTo
		}

		path, err := excelexportservice.ExportAdvisory(response, dir, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(s.errOut, "Your file has been saved to: %s\n", path)
	}

	return nil
}
