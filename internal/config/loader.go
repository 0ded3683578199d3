// Package config reads the flight feed: a record count on the first line,
// then one flight per line as
//
//	date flightNumber seatsPerRow startRow1-endRow1 price1$ startRow2-endRow2 price2$
//
// Total seat count is derived from the second row range times seats per row,
// and each row range is mapped onto absolute seat numbers before pricing.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cx-tal-miterani/seat-reservation/internal/inventory"
)

const fieldsPerRecord = 7

// LoadFile reads the flight feed at path.
func LoadFile(path string) ([]*inventory.FlightInventory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open flight feed: %w", err)
	}
	defer f.Close()

	flights, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return flights, nil
}

// Load parses the flight feed from r.
func Load(r io.Reader) ([]*inventory.FlightInventory, error) {
	scanner := bufio.NewScanner(r)

	count, err := readRecordCount(scanner)
	if err != nil {
		return nil, err
	}

	flights := make([]*inventory.FlightInventory, 0, count)
	line := 1
	for len(flights) < count {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read flight feed: %w", err)
			}
			return nil, fmt.Errorf("flight feed ended after %d of %d records", len(flights), count)
		}
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		flight, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		flights = append(flights, flight)
	}

	return flights, nil
}

func readRecordCount(scanner *bufio.Scanner) (int, error) {
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		count, err := strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("invalid record count %q", text)
		}
		if count < 0 {
			return 0, fmt.Errorf("negative record count %d", count)
		}
		return count, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read flight feed: %w", err)
	}
	return 0, fmt.Errorf("flight feed is empty")
}

func parseRecord(text string) (*inventory.FlightInventory, error) {
	fields := strings.Fields(text)
	if len(fields) != fieldsPerRecord {
		return nil, fmt.Errorf("expected %d fields, got %d", fieldsPerRecord, len(fields))
	}

	date := fields[0]
	flightNumber := fields[1]

	seatsPerRow, err := strconv.Atoi(fields[2])
	if err != nil || seatsPerRow < 1 {
		return nil, fmt.Errorf("invalid seats-per-row %q", fields[2])
	}

	start1, end1, err := parseRowRange(fields[3])
	if err != nil {
		return nil, err
	}
	price1, err := parsePrice(fields[4])
	if err != nil {
		return nil, err
	}
	start2, end2, err := parseRowRange(fields[5])
	if err != nil {
		return nil, err
	}
	price2, err := parsePrice(fields[6])
	if err != nil {
		return nil, err
	}

	// The last row range bounds the aircraft: total seats are derived from
	// its end row.
	flight := inventory.New(flightNumber, date, end2*seatsPerRow)
	flight.SetPriceRange((start1-1)*seatsPerRow+1, end1*seatsPerRow, price1)
	flight.SetPriceRange((start2-1)*seatsPerRow+1, end2*seatsPerRow, price2)

	return flight, nil
}

func parseRowRange(token string) (start, end int, err error) {
	first, second, ok := strings.Cut(token, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid row range %q", token)
	}
	start, err = strconv.Atoi(first)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row range %q", token)
	}
	end, err = strconv.Atoi(second)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row range %q", token)
	}
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid row range %q", token)
	}
	return start, end, nil
}

func parsePrice(token string) (int, error) {
	raw, ok := strings.CutSuffix(token, "$")
	if !ok {
		return 0, fmt.Errorf("invalid price %q", token)
	}
	price, err := strconv.Atoi(raw)
	if err != nil || price < 0 {
		return 0, fmt.Errorf("invalid price %q", token)
	}
	return price, nil
}
