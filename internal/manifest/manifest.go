// Package manifest loads item and container descriptors from an xlsx cargo
// manifest, the format stowage lists usually arrive in. An "Items" sheet
// describes the cargo and a "Containers" sheet the available bins; containers
// with maritime columns filled in become maritime containers.
package manifest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stowage-io/stowage/internal/maritime"
	"github.com/stowage-io/stowage/internal/packing"
)

const (
	itemsSheet      = "Items"
	containersSheet = "Containers"
)

// ErrMissingColumn is returned when a required header is absent from a sheet.
var ErrMissingColumn = errors.New("required column missing from manifest sheet")

// Manifest is the parsed content of a cargo workbook.
type Manifest struct {
	Items      []*packing.Item
	Containers []packing.Container
}

// Load parses the workbook at path. Maritime containers in the manifest share
// the provided segregation table; a nil table disables segregation. A row that
// fails validation aborts the load with its row number, nothing partial is
// returned.
func Load(path string, table *maritime.SegregationTable) (*Manifest, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	items, err := loadItems(f)
	if err != nil {
		return nil, err
	}
	containers, err := loadContainers(f, table)
	if err != nil {
		return nil, err
	}
	return &Manifest{Items: items, Containers: containers}, nil
}

func loadItems(f *excelize.File) ([]*packing.Item, error) {
	rows, err := f.GetRows(itemsSheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", itemsSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", itemsSheet)
	}

	cols, err := columnIndex(rows[0], itemsSheet, "Name", "Width", "Height", "Depth", "Weight")
	if err != nil {
		return nil, err
	}

	items := make([]*packing.Item, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}

		name := cell(row, cols["Name"])
		width, err := numericCell(row, cols["Width"], rowNum, "Width")
		if err != nil {
			return nil, err
		}
		height, err := numericCell(row, cols["Height"], rowNum, "Height")
		if err != nil {
			return nil, err
		}
		depth, err := numericCell(row, cols["Depth"], rowNum, "Depth")
		if err != nil {
			return nil, err
		}
		weight, err := numericCell(row, cols["Weight"], rowNum, "Weight")
		if err != nil {
			return nil, err
		}

		opts := make([]packing.ItemOption, 0, 3)
		if raw := cell(row, cols["Quantity"]); raw != "" {
			quantity, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: invalid Quantity %q", itemsSheet, rowNum, raw)
			}
			opts = append(opts, packing.WithQuantity(quantity))
		}
		if raw := cell(row, cols["Rotations"]); raw != "" {
			rotations, err := parseRotations(raw)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", itemsSheet, rowNum, err)
			}
			opts = append(opts, packing.WithRotations(rotations...))
		}
		if class := cell(row, cols["HazardClass"]); class != "" {
			opts = append(opts, packing.WithHazardClass(class))
		}

		item, err := packing.NewItem(name, width, height, depth, weight, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", itemsSheet, rowNum, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func loadContainers(f *excelize.File, table *maritime.SegregationTable) ([]packing.Container, error) {
	rows, err := f.GetRows(containersSheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", containersSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", containersSheet)
	}

	cols, err := columnIndex(rows[0], containersSheet, "ID", "Width", "Height", "Depth", "Capacity")
	if err != nil {
		return nil, err
	}

	containers := make([]packing.Container, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}

		id := cell(row, cols["ID"])
		width, err := numericCell(row, cols["Width"], rowNum, "Width")
		if err != nil {
			return nil, err
		}
		height, err := numericCell(row, cols["Height"], rowNum, "Height")
		if err != nil {
			return nil, err
		}
		depth, err := numericCell(row, cols["Depth"], rowNum, "Depth")
		if err != nil {
			return nil, err
		}
		capacity, err := numericCell(row, cols["Capacity"], rowNum, "Capacity")
		if err != nil {
			return nil, err
		}

		tare := cell(row, cols["TareWeight"])
		gross := cell(row, cols["MaxGrossWeight"])
		if tare == "" && gross == "" {
			bin, err := packing.NewBin(id, width, height, depth, capacity)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", containersSheet, rowNum, err)
			}
			containers = append(containers, bin)
			continue
		}

		cfg := maritime.Config{}
		if cfg.TareWeight, err = optionalNumber(tare, rowNum, "TareWeight"); err != nil {
			return nil, err
		}
		if cfg.MaxGrossWeight, err = optionalNumber(gross, rowNum, "MaxGrossWeight"); err != nil {
			return nil, err
		}
		if cfg.LongitudinalTolerance, err = optionalNumber(cell(row, cols["LongitudinalTolerance"]), rowNum, "LongitudinalTolerance"); err != nil {
			return nil, err
		}
		if cfg.VerticalTolerance, err = optionalNumber(cell(row, cols["VerticalTolerance"]), rowNum, "VerticalTolerance"); err != nil {
			return nil, err
		}

		container, err := maritime.NewContainer(id, width, height, depth, capacity, cfg, table)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", containersSheet, rowNum, err)
		}
		containers = append(containers, container)
	}
	return containers, nil
}

// columnIndex maps header names to column positions, verifying the required
// ones are present. Optional headers map to -1 when absent.
func columnIndex(header []string, sheet string, required ...string) (map[string]int, error) {
	cols := map[string]int{
		"Name": -1, "ID": -1, "Width": -1, "Height": -1, "Depth": -1,
		"Weight": -1, "Quantity": -1, "Rotations": -1, "HazardClass": -1,
		"Capacity": -1, "TareWeight": -1, "MaxGrossWeight": -1,
		"LongitudinalTolerance": -1, "VerticalTolerance": -1,
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, known := cols[name]; known {
			cols[name] = i
		}
	}
	for _, name := range required {
		if cols[name] == -1 {
			return nil, fmt.Errorf("sheet %s, column %s: %w", sheet, name, ErrMissingColumn)
		}
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func numericCell(row []string, idx, rowNum int, column string) (float64, error) {
	raw := cell(row, idx)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s %q", rowNum, column, raw)
	}
	return value, nil
}

func optionalNumber(raw string, rowNum int, column string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s %q", rowNum, column, raw)
	}
	return value, nil
}

func parseRotations(raw string) ([]packing.Rotation, error) {
	parts := strings.Split(raw, ",")
	rotations := make([]packing.Rotation, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rotation, ok := packing.ParseRotation(part)
		if !ok {
			return nil, fmt.Errorf("unknown rotation %q", part)
		}
		rotations = append(rotations, rotation)
	}
	if len(rotations) == 0 {
		return nil, errors.New("empty rotation list")
	}
	return rotations, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
