package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"codequiz-service/internal/domain"
	"codequiz-service/pkg/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Certificate is the data drawn onto the certificate image.
type Certificate struct {
	ID        string    `json:"id"`
	Student   string    `json:"student"`
	Course    string    `json:"course"`
	Score     int       `json:"score"`
	IssuedAt  time.Time `json:"issuedAt"`
	Issuer    string    `json:"issuer"`
	Signatory string    `json:"signatory"`
}

// IssueDate formats the date the way the certificate prints it.
func (c Certificate) IssueDate() string {
	return c.IssuedAt.Format("January 2, 2006")
}

// Rasterizer turns a certificate into an image.
//
//go:generate mockgen -source=certificate.go -destination=mock/rasterizer_mock.go -package=mock_app Rasterizer
type Rasterizer interface {
	Rasterize(ctx context.Context, cert Certificate) ([]byte, error)
}

// IssuedCertificate is a rendered certificate ready for download.
type IssuedCertificate struct {
	Certificate Certificate
	FileName    string
	ShareText   string
	Image       []byte
}

// CertificateOptions names who issues and signs certificates.
type CertificateOptions struct {
	Issuer    string
	Signatory string
	Threshold int
}

// CertificateService gates and renders certificates for qualifying payloads.
type CertificateService struct {
	results    ResultsRepository
	rasterizer Rasterizer
	opts       CertificateOptions
	log        *zap.Logger
	now        func() time.Time
}

func NewCertificateService(results ResultsRepository, rasterizer Rasterizer, opts CertificateOptions, log *zap.Logger) *CertificateService {
	if opts.Threshold <= 0 {
		opts.Threshold = domain.CertificateThreshold
	}
	if opts.Issuer == "" {
		opts.Issuer = "CodeWithHimanshu"
	}
	return &CertificateService{
		results:    results,
		rasterizer: rasterizer,
		opts:       opts,
		log:        log,
		now:        time.Now,
	}
}

// Eligibility loads the payload of slot and reports whether it qualifies.
func (s *CertificateService) Eligibility(ctx context.Context, slot string) (domain.ResultsPayload, error) {
	payload, err := s.results.Load(ctx, slot)
	if err != nil {
		return domain.ResultsPayload{}, err
	}
	if !domain.Eligible(payload.Percentage, s.opts.Threshold) {
		return payload, domain.ErrNotEligible
	}
	return payload, nil
}

// Issue renders a certificate for studentName from the payload in slot.
func (s *CertificateService) Issue(ctx context.Context, slot, studentName string) (IssuedCertificate, error) {
	name := strings.TrimSpace(studentName)
	if err := validator.ValidateVar(name, "required"); err != nil {
		return IssuedCertificate{}, domain.ErrNameRequired
	}

	payload, err := s.Eligibility(ctx, slot)
	if err != nil {
		return IssuedCertificate{}, err
	}

	cert := Certificate{
		ID:        uuid.NewString(),
		Student:   name,
		Course:    payload.Category,
		Score:     payload.Percentage,
		IssuedAt:  s.now(),
		Issuer:    s.opts.Issuer,
		Signatory: s.opts.Signatory,
	}
	image, err := s.rasterizer.Rasterize(ctx, cert)
	if err != nil {
		s.log.Error("certificate rendering failed", zap.String("certificate_id", cert.ID), zap.Error(err))
		return IssuedCertificate{}, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	s.log.Info("certificate issued",
		zap.String("certificate_id", cert.ID),
		zap.String("course", cert.Course),
		zap.Int("score", cert.Score))
	return IssuedCertificate{
		Certificate: cert,
		FileName:    CertificateFileName(s.opts.Issuer, name),
		ShareText:   ShareText(cert),
		Image:       image,
	}, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CertificateFileName builds the download name, e.g. "Issuer-Certificate-Ada-Lovelace.png".
func CertificateFileName(issuer, student string) string {
	return fmt.Sprintf("%s-Certificate-%s.png", issuer, whitespaceRun.ReplaceAllString(strings.TrimSpace(student), "-"))
}

// ShareText is the message offered when sharing a certificate.
func ShareText(cert Certificate) string {
	return fmt.Sprintf("I just earned a certificate in %s with a score of %d%%!", cert.Course, cert.Score)
}
