package anythingllm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/foxbrief/internal/domain"
)

// UploadDocument implements ports.DocumentUploader: multipart POST to
// /api/v1/document/upload adding the file to the given workspace. Content type
// is inferred from the file extension. Title and source, when set, travel in
// the metadata form field as a JSON-encoded string.
func (c *Client) UploadDocument(ctx context.Context, path, workspaceSlug, title, source string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(path)))
	header.Set("Content-Type", contentTypeFor(path))
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}

	if err := writer.WriteField("addToWorkspaces", workspaceSlug); err != nil {
		return err
	}
	if title != "" || source != "" {
		meta := map[string]string{}
		if title != "" {
			meta["title"] = title
		}
		if source != "" {
			meta["docSource"] = source
		}
		encoded, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		if err := writer.WriteField("metadata", string(encoded)); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/v1/document/upload"), &body)
	if err != nil {
		return err
	}
	c.setAuth(req)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.longClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: document upload: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: document upload: %s: %s", domain.ErrTransport, resp.Status, truncate(raw, 500))
	}
	return nil
}

func contentTypeFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "application/json"
	}
	return "text/markdown"
}
