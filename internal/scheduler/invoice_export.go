package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/internal/render"
	"github.com/vfg2006/chai-ledger/internal/usecases/aggregating"
	"golang.org/x/sync/errgroup"
)

var ErrAlreadyRunning = errors.New("exportação de faturas já em andamento")

var (
	unsafeFileChars  = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	exportedFileName  = regexp.MustCompile(`^Invoice-\d+-([A-Za-z0-9_-]+)\.([a-z]+)$`)
)

// InvoiceExportConfig representa a configuração da exportação mensal de faturas
type InvoiceExportConfig struct {
	CronSchedule      string
	Enabled           bool
	OutputDir         string
	Format            render.Format
	MaxConcurrentJobs int
	MonthLookBack     int
}

// LedgerReader é o que a exportação lê do livro-caixa
type LedgerReader interface {
	Offices() []domain.Office
	Orders() []domain.Order
}

type InvoiceGenerator interface {
	Generate(ctx context.Context, filter domain.ReportFilter) (*domain.Invoice, error)
}

// InvoiceExportService gera, para cada escritório com pedidos, a fatura dos meses anteriores
type InvoiceExportService struct {
	scheduler         *gocron.Scheduler
	config            InvoiceExportConfig
	ledger            LedgerReader
	invoicer          InvoiceGenerator
	exportRunning     bool
	exportMutex       sync.Mutex
	lastStartedAt     time.Time
	lastCompletedAt   time.Time
	lastExportedFiles int
	lastError         string
	now               func() time.Time
}

func NewInvoiceExportService(ledger LedgerReader, invoicer InvoiceGenerator, appConfig *config.Config) *InvoiceExportService {
	format, err := render.ParseFormat(appConfig.InvoiceExport.Format)
	if err != nil {
		logrus.WithError(err).Warn("Formato de exportação inválido, usando pdf")
		format = render.FormatPDF
	}

	exportConfig := InvoiceExportConfig{
		CronSchedule:      appConfig.InvoiceExport.CronSchedule,
		Enabled:           appConfig.InvoiceExport.Enabled,
		OutputDir:         appConfig.InvoiceExport.OutputDir,
		Format:            format,
		MaxConcurrentJobs: max(appConfig.InvoiceExport.MaxConcurrentJobs, 1),
		MonthLookBack:     max(appConfig.InvoiceExport.MonthLookBack, 1),
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       exportConfig.CronSchedule,
		"output_dir":          exportConfig.OutputDir,
		"format":              exportConfig.Format,
		"max_concurrent_jobs": exportConfig.MaxConcurrentJobs,
		"enabled":             exportConfig.Enabled,
	}).Info("Configuração da exportação de faturas carregada")

	return &InvoiceExportService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    exportConfig,
		ledger:    ledger,
		invoicer:  invoicer,
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *InvoiceExportService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Exportação de faturas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de exportação de faturas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.exportFromSchedule(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar exportação de faturas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de exportação de faturas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *InvoiceExportService) exportFromSchedule(ctx context.Context) {
	if _, err := s.Run(ctx); err != nil && !errors.Is(err, ErrAlreadyRunning) {
		logrus.WithError(err).Error("Exportação de faturas terminou com erro")
	}
}

// Run exporta os meses configurados e devolve quantos arquivos foram gravados
func (s *InvoiceExportService) Run(ctx context.Context) (int, error) {
	s.exportMutex.Lock()
	if s.exportRunning {
		s.exportMutex.Unlock()
		logrus.Info("Exportação de faturas já em andamento, ignorando")
		return 0, ErrAlreadyRunning
	}
	s.exportRunning = true
	s.lastStartedAt = s.now()
	s.exportMutex.Unlock()

	exported, err := s.export(ctx)

	s.exportMutex.Lock()
	s.exportRunning = false
	s.lastCompletedAt = s.now()
	s.lastExportedFiles = exported
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.exportMutex.Unlock()

	return exported, err
}

func (s *InvoiceExportService) export(ctx context.Context) (int, error) {
	startTime := s.now()
	total := 0

	for i := 1; i <= s.config.MonthLookBack; i++ {
		month := startTime.AddDate(0, -i, 0)
		from := domain.NewDate(month.Year(), month.Month(), 1)
		to := domain.NewDate(month.Year(), month.Month()+1, 1).AddDays(-1)

		logrus.WithFields(logrus.Fields{
			"start_date": from.String(),
			"end_date":   to.String(),
		}).Info("Período da exportação de faturas")

		exported, err := s.exportMonth(ctx, from, to)
		total += exported
		if err != nil {
			return total, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"files":    total,
	}).Info("Exportação de faturas concluída")

	return total, nil
}

// exportMonth numera as faturas em sequência e desenha os arquivos em paralelo.
// Escritórios que já têm fatura do mês no diretório não recebem um novo número.
func (s *InvoiceExportService) exportMonth(ctx context.Context, from, to domain.Date) (int, error) {
	renderer, err := render.New(s.config.Format)
	if err != nil {
		return 0, err
	}

	dir := filepath.Join(s.config.OutputDir, from.MonthKey())
	done, err := exportedOffices(dir, renderer.Extension())
	if err != nil {
		return 0, err
	}

	orders := s.ledger.Orders()

	var invoices []*domain.Invoice
	seen := make(map[string]bool)
	for _, office := range s.ledger.Offices() {
		if seen[office.Name] {
			continue
		}
		seen[office.Name] = true

		if done[fileSlug(office.Name)] {
			logrus.WithFields(logrus.Fields{
				"office": office.Name,
				"month":  from.MonthKey(),
			}).Debug("Fatura do mês já exportada, ignorando")
			continue
		}

		filter := domain.ReportFilter{Office: office.Name, From: from, To: to}
		if len(aggregating.Filter(orders, filter)) == 0 {
			continue
		}

		invoice, err := s.invoicer.Generate(ctx, filter)
		if err != nil {
			return 0, errors.Wrapf(err, "erro ao gerar fatura de %s", office.Name)
		}
		invoices = append(invoices, invoice)
	}

	if len(invoices) == 0 {
		logrus.WithField("month", from.MonthKey()).Info("Nenhuma fatura pendente no mês")
		return 0, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrapf(err, "erro ao criar diretório %s", dir)
	}

	var (
		g       errgroup.Group
		mu      sync.Mutex
		written int
	)
	g.SetLimit(s.config.MaxConcurrentJobs)

	for _, invoice := range invoices {
		g.Go(func() error {
			path, err := s.writeInvoice(ctx, dir, invoice)
			if err != nil {
				logrus.WithError(err).WithField("invoice_number", invoice.Number).Error("Erro ao gravar fatura")
				return err
			}

			mu.Lock()
			written++
			mu.Unlock()

			logrus.WithFields(logrus.Fields{
				"invoice_number": invoice.Number,
				"office":         invoice.BillTo.Name,
				"path":           path,
			}).Info("Fatura exportada")
			return nil
		})
	}

	err = g.Wait()
	return written, err
}

func (s *InvoiceExportService) writeInvoice(ctx context.Context, dir string, invoice *domain.Invoice) (string, error) {
	renderer, err := render.New(s.config.Format)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := renderer.Render(ctx, invoice, &buf); err != nil {
		return "", err
	}

	name := fmt.Sprintf("Invoice-%s-%s.%s", invoice.Number, fileSlug(invoice.BillTo.Name), renderer.Extension())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrapf(err, "erro ao gravar %s", path)
	}
	return path, nil
}

// exportedOffices lista os escritórios (pelo slug) que já têm fatura no diretório
func exportedOffices(dir, extension string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, errors.Wrapf(err, "erro ao listar %s", dir)
	}

	done := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := exportedFileName.FindStringSubmatch(entry.Name())
		if match != nil && match[2] == extension {
			done[match[1]] = true
		}
	}
	return done, nil
}

func fileSlug(name string) string {
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(name, "-"), "-")
	if slug == "" {
		return "office"
	}
	return slug
}

// TriggerManualSync inicia a exportação fora do horário agendado
func (s *InvoiceExportService) TriggerManualSync() error {
	s.exportMutex.Lock()
	running := s.exportRunning
	s.exportMutex.Unlock()

	if running {
		logrus.Info("Exportação de faturas já em andamento, ignorando solicitação manual")
		return ErrAlreadyRunning
	}

	logrus.Info("Iniciando exportação manual de faturas")
	go s.exportFromSchedule(context.Background())
	return nil
}

// GetStatus retorna o status atual da exportação
func (s *InvoiceExportService) GetStatus() map[string]any {
	s.exportMutex.Lock()
	defer s.exportMutex.Unlock()

	return map[string]any{
		"export_running":        s.exportRunning,
		"export_cron":           s.config.CronSchedule,
		"export_enabled":        s.config.Enabled,
		"export_format":         s.config.Format,
		"last_export_started":   s.lastStartedAt,
		"last_export_completed": s.lastCompletedAt,
		"last_exported_files":   s.lastExportedFiles,
		"last_error":            s.lastError,
	}
}
