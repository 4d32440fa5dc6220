package worker

// certificate_worker.go
// Renders warranty certificate PDFs and records the file path back on the
// warranty row. Triggered by the certificate endpoint.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"veloservice/internal/infra"
	"veloservice/internal/repository"
)

// CertificateJobPayload is the job envelope sent to QueueCertificate.
type CertificateJobPayload struct {
	WarrantyID uint `json:"warranty_id"`
	// NotifyEmail, when set, receives the rendered certificate as attachment.
	NotifyEmail string `json:"notify_email,omitempty"`
}

type CertificateWorker struct {
	warranties  repository.WarrantyRepository
	centers     repository.ServiceCenterRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewCertificateWorker(warranties repository.WarrantyRepository, centers repository.ServiceCenterRepository, mailer *infra.Mailer, storagePath string) *CertificateWorker {
	return &CertificateWorker{
		warranties:  warranties,
		centers:     centers,
		mailer:      mailer,
		storagePath: storagePath,
	}
}

func (w *CertificateWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload CertificateJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("certificate_worker: invalid payload")
		return nil
	}

	warranty, err := w.warranties.FindByID(ctx, payload.WarrantyID)
	if err != nil {
		// The warranty may have been deleted between enqueue and processing.
		log.Warn().Uint("warranty_id", payload.WarrantyID).Err(err).
			Msg("certificate_worker: warranty not found")
		return nil
	}

	center, err := w.centers.FindByID(ctx, warranty.ServiceCenterID)
	if err != nil {
		return fmt.Errorf("load service center %d: %w", warranty.ServiceCenterID, err)
	}

	path, err := infra.GenerateWarrantyPDF(warranty, center.Name, w.storagePath)
	if err != nil {
		return fmt.Errorf("render certificate for warranty %d: %w", warranty.ID, err)
	}

	warranty.CertificatePath = &path
	if err := w.warranties.Update(ctx, warranty); err != nil {
		return fmt.Errorf("record certificate path for warranty %d: %w", warranty.ID, err)
	}

	if payload.NotifyEmail != "" {
		subject := fmt.Sprintf("Warranty certificate #%d", warranty.ID)
		body := fmt.Sprintf("Your repair warranty certificate for %s %s is attached.",
			warranty.BikeManufacturer, warranty.BikeModel)
		if err := w.mailer.Send(payload.NotifyEmail, subject, body, path); err != nil {
			// The certificate itself is done; a mail failure shouldn't redo it.
			log.Error().Err(err).Str("to", payload.NotifyEmail).
				Msg("certificate_worker: failed to send certificate email")
		}
	}

	log.Info().Uint("warranty_id", warranty.ID).Str("path", path).
		Msg("certificate_worker: certificate rendered")
	return nil
}
