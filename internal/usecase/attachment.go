package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"kitaconnect/internal/domain/entity"
	"kitaconnect/pkg/errors"
)

// maxAttachmentBytes bounds the decoded size of a single attachment.
const maxAttachmentBytes = 10 << 20 // 10 MiB

const dataURLPrefix = "data:"

// EncodeDataURL assembles the self-describing inline payload a draft
// attachment carries before submission.
func EncodeDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURL splits an inline payload into its MIME-type hint and raw
// bytes. Payloads that are not "data:<mime>;base64,<bytes>" are rejected.
func DecodeDataURL(payload string) (string, []byte, error) {
	if !strings.HasPrefix(payload, dataURLPrefix) {
		return "", nil, fmt.Errorf("attachment payload is not a data URL")
	}
	rest := payload[len(dataURLPrefix):]

	sep := strings.Index(rest, ",")
	if sep < 0 {
		return "", nil, fmt.Errorf("attachment payload has no data section")
	}

	meta := rest[:sep]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("attachment payload must be base64 encoded")
	}
	mimeType := strings.TrimSuffix(meta, ";base64")

	data, err := base64.StdEncoding.DecodeString(rest[sep+1:])
	if err != nil {
		return "", nil, fmt.Errorf("attachment payload is not valid base64: %w", err)
	}

	return mimeType, data, nil
}

// resolveAttachments decodes each inbound attachment and uploads its bytes,
// replacing the inline payload with a resolved key and URL. Uploads run
// concurrently; results keep the original selection order. Any single
// failure fails the whole set so the caller never persists a silently
// partial attachment list.
func resolveAttachments(ctx context.Context, store BlobStorage, prefix string, attachments []entity.Attachment) ([]entity.Attachment, error) {
	if len(attachments) == 0 {
		return nil, nil
	}

	resolved := make([]entity.Attachment, len(attachments))

	g, gctx := errgroup.WithContext(ctx)
	for i, att := range attachments {
		i, att := i, att
		g.Go(func() error {
			if att.Data == "" {
				return errors.BadRequest(fmt.Sprintf("Attachment %q has no payload", att.FileName), nil)
			}

			mimeType, data, err := DecodeDataURL(att.Data)
			if err != nil {
				return errors.BadRequest(fmt.Sprintf("Attachment %q has an invalid payload", att.FileName), err)
			}
			if len(data) > maxAttachmentBytes {
				return errors.BadRequest(fmt.Sprintf("Attachment %q exceeds the %d byte limit", att.FileName, maxAttachmentBytes), nil)
			}
			if att.MimeType != "" {
				mimeType = att.MimeType
			}

			objectName := fmt.Sprintf("%s/%s-%s", prefix, uuid.New().String(), safeFileName(att.FileName))
			url, err := store.UploadObject(gctx, objectName, mimeType, data)
			if err != nil {
				return errors.Internal(fmt.Sprintf("Failed to store attachment %q", att.FileName), err)
			}

			resolved[i] = entity.Attachment{
				FileName: att.FileName,
				MimeType: mimeType,
				Size:     int64(len(data)),
				Key:      objectName,
				URL:      url,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resolved, nil
}

func safeFileName(name string) string {
	name = path.Base(name)
	if name == "" || name == "." || name == "/" {
		return "file"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
