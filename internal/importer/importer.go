package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"sams-storefront/internal/domain"
)

type MenuWriter interface {
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

// CSVImporter reads menu exports and inserts/updates menu items.
type CSVImporter struct {
	reader *csv.Reader
	repo   MenuWriter
	logger logrus.FieldLogger
}

func NewCSVImporter(r io.Reader, repo MenuWriter, logger logrus.FieldLogger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &CSVImporter{
		reader: csvr,
		repo:   repo,
		logger: logger,
	}
}

var requiredHeaders = []string{"id", "name.en", "name.fr", "price"}

// Run parses CSV rows and upserts one menu item per row. Blank rows are skipped.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, h := range requiredHeaders {
		if _, ok := index[h]; !ok {
			return 0, fmt.Errorf("missing column %q", h)
		}
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		item, ok, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if !ok {
			continue
		}
		if _, err := i.repo.Upsert(ctx, item); err != nil {
			return imported, fmt.Errorf("upsert menu item %d: %w", item.ID, err)
		}
		i.logger.WithFields(logrus.Fields{"id": item.ID, "price": item.Price}).Debug("imported menu item")
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.MenuItem, bool, error) {
	idStr := pick(record, index, "id")
	nameEN := pick(record, index, "name.en")
	nameFR := pick(record, index, "name.fr")
	priceStr := pick(record, index, "price")

	if idStr == "" && nameEN == "" && nameFR == "" && priceStr == "" {
		return domain.MenuItem{}, false, nil
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return domain.MenuItem{}, false, fmt.Errorf("%w: bad id %q", domain.ErrInvalidMenuItem, idStr)
	}
	price, err := strconv.ParseInt(strings.ReplaceAll(priceStr, " ", ""), 10, 64)
	if err != nil {
		return domain.MenuItem{}, false, fmt.Errorf("%w: bad price %q for item %d", domain.ErrInvalidMenuItem, priceStr, id)
	}
	if nameEN == "" || nameFR == "" {
		return domain.MenuItem{}, false, fmt.Errorf("%w: item %d needs name.en and name.fr", domain.ErrInvalidMenuItem, id)
	}

	item := domain.MenuItem{
		ID:       id,
		Name:     domain.LocalizedText{domain.LangEN: nameEN, domain.LangFR: nameFR},
		Price:    price,
		ImageRef: pick(record, index, "image"),
	}
	descEN := pick(record, index, "description.en")
	descFR := pick(record, index, "description.fr")
	if descEN != "" || descFR != "" {
		item.Description = domain.LocalizedText{domain.LangEN: descEN, domain.LangFR: descFR}
	}
	return item, true, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
