package extract

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/pkg/storage"

	"golang.org/x/text/encoding/charmap"
)

// DimensionProber reports pixel dimensions for image payloads.
// The default prober never succeeds; real probing is pluggable.
type DimensionProber interface {
	Probe(data []byte) (width, height int, ok bool)
}

type NoopProber struct{}

func (NoopProber) Probe(data []byte) (int, int, bool) {
	return 0, 0, false
}

// Dispatcher converts a stored blob into a textual summary based on its
// declared media type. Extract never returns an error: every failure is
// folded into a descriptive text result so callers always get content.
type Dispatcher struct {
	gateway storage.Gateway
	logger  logger.ILogger
	prober  DimensionProber
}

func NewDispatcher(gateway storage.Gateway, log logger.ILogger, prober DimensionProber) *Dispatcher {
	if prober == nil {
		prober = NoopProber{}
	}
	return &Dispatcher{
		gateway: gateway,
		logger:  log,
		prober:  prober,
	}
}

func (d *Dispatcher) Extract(ctx context.Context, storagePath, mimeType, originalName string) string {
	content, err := d.run(ctx, storagePath, mimeType, originalName)
	if err != nil {
		d.logger.Error("extract", "content extraction failed", map[string]interface{}{
			"file":  originalName,
			"path":  storagePath,
			"error": err.Error(),
		})
		return fmt.Sprintf("Error parsing file %q: %s. The file was uploaded but content extraction failed.", originalName, err)
	}

	d.logger.Info("extract", "file parsed", map[string]interface{}{
		"file":  originalName,
		"chars": len(content),
	})
	return content
}

func (d *Dispatcher) run(ctx context.Context, storagePath, mimeType, originalName string) (string, error) {
	objects, err := d.gateway.List(ctx, path.Dir(storagePath), path.Base(storagePath))
	if err != nil || len(objects) == 0 {
		return "", fmt.Errorf("file not found in storage: %s", storagePath)
	}

	data, err := d.gateway.Download(ctx, storagePath)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %v", err)
	}

	switch {
	case strings.HasPrefix(mimeType, "text/"):
		return decodeText(data), nil
	case mimeType == "application/pdf":
		return pdfSummary(originalName, len(data)), nil
	case strings.Contains(mimeType, "word") || strings.Contains(mimeType, "document"):
		return wordSummary(originalName, len(data)), nil
	case strings.HasPrefix(mimeType, "image/"):
		return d.imageSummary(originalName, data), nil
	case strings.Contains(mimeType, "spreadsheet") || strings.Contains(mimeType, "excel"):
		return spreadsheetSummary(originalName, len(data)), nil
	default:
		return fmt.Sprintf("File %q (%s) uploaded successfully. File size: %dKB. Content parsing not supported for this file type, but the file is available for download.",
			originalName, mimeType, len(data)/1024), nil
	}
}

// decodeText returns the payload as UTF-8, falling back to a Latin-1
// reinterpretation when the bytes are not valid UTF-8. It cannot fail.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

func (d *Dispatcher) imageSummary(name string, data []byte) string {
	size := fmt.Sprintf("%dKB", len(data)/1024)
	if w, h, ok := d.prober.Probe(data); ok {
		size = fmt.Sprintf("%s, %dx%d", size, w, h)
	}

	return fmt.Sprintf(`Image %q uploaded successfully (%s).

Content Summary: This is an image file that has been successfully uploaded and is ready for processing.

The image can be:
- Viewed and downloaded
- Analyzed by AI vision models for content description
- Processed for text extraction (OCR) if it contains text

You can ask me to describe what's in the image or extract any text it contains.`, name, size)
}

func pdfSummary(name string, byteLen int) string {
	return fmt.Sprintf(`PDF document %q uploaded successfully (%dKB).

Content Summary: This appears to be a PDF document. To extract text content from PDFs, additional parsing libraries would need to be installed on the server.

The file is available for:
- Download and viewing
- Sharing with others
- Processing by vision-capable AI models
- Manual review and analysis

You can ask me to help you work with this document in other ways, such as creating summaries based on the filename or helping you organize it.`, name, byteLen/1024)
}

func wordSummary(name string, byteLen int) string {
	return fmt.Sprintf(`Word document %q uploaded successfully (%dKB).

Content Summary: This appears to be a Microsoft Word document. To extract text content from Word documents, additional parsing libraries would need to be installed on the server.

The file is available for:
- Download and viewing
- Sharing with others
- Manual review and editing

You can ask me to help you work with this document, such as summarizing it from its filename or organizing it alongside related files.`, name, byteLen/1024)
}

func spreadsheetSummary(name string, byteLen int) string {
	return fmt.Sprintf(`Spreadsheet %q uploaded successfully (%dKB).

Content Summary: This appears to be a spreadsheet file (Excel/CSV). To extract data from spreadsheets, additional parsing libraries would need to be installed on the server.

The file is available for:
- Download and viewing
- Data analysis and processing
- Sharing with team members

You can ask me to help you work with this spreadsheet, such as describing its likely structure or setting up a workflow around it.`, name, byteLen/1024)
}
