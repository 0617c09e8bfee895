package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Converts a product sheet (xlsx) into a JSON feed fixture that can
// be served as a stand-in for the upstream product API during local
// development. Records are emitted with the upstream's Spanish field
// names so the fixture exercises the same normalization path as the
// real feed.
//
// Expected columns: id, nombre, precio, descripcion, categoria,
// imagen, existencia. Header row required.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> <output_json_path>")
	}

	inPath := os.Args[1]
	outPath := os.Args[2]

	fmt.Printf("Reading XLSX file: %s\n", inPath)
	records, err := readProductsFromXLSX(inPath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products read: %d\n", len(records))

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatal("Failed to encode fixture:", err)
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		log.Fatal("Failed to write fixture:", err)
	}

	fmt.Printf("Feed fixture written: %s\n", outPath)
}

func readProductsFromXLSX(filePath string) ([]map[string]interface{}, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}

	header := rows[0]
	records := make([]map[string]interface{}, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := map[string]interface{}{}
		for i, column := range header {
			key := strings.TrimSpace(strings.ToLower(column))
			if key == "" || i >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue
			}
			record[key] = value
		}
		if len(record) == 0 {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
