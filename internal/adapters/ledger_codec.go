package adapters

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"carbon-dropins/internal/types"
)

const (
	ledgerFieldCount   = 5
	maxLedgerLineBytes = 1024 * 1024
)

// Field separators inside a value are percent-encoded so every line keeps
// exactly five fields.
var (
	ledgerFieldEscaper   = strings.NewReplacer("%", "%25", ",", "%2C")
	ledgerFieldUnescaper = strings.NewReplacer("%2C", ",", "%2c", ",", "%25", "%")
)

// ParseLedgerLine parses one bundles.info data line:
// symbolicName,version,path,startLevel,fragment
func ParseLedgerLine(line string) (types.BundleRecord, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != ledgerFieldCount {
		return types.BundleRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid ledger line: expected %d fields, got %d", ledgerFieldCount, len(parts)))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return types.BundleRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid ledger line: empty symbolic name, version or path")
	}
	startLevel, err := strconv.Atoi(parts[3])
	if err != nil {
		return types.BundleRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid ledger line: start level is not a number").
			WithCause(err)
	}
	fragment, err := strconv.ParseBool(strings.ToLower(parts[4]))
	if err != nil {
		return types.BundleRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid ledger line: fragment marker is not a boolean").
			WithCause(err)
	}
	return types.BundleRecord{
		SymbolicName: ledgerFieldUnescaper.Replace(parts[0]),
		Version:      ledgerFieldUnescaper.Replace(parts[1]),
		Path:         ledgerFieldUnescaper.Replace(parts[2]),
		StartLevel:   startLevel,
		Fragment:     fragment,
	}, nil
}

func FormatLedgerLine(record types.BundleRecord) string {
	return fmt.Sprintf("%s,%s,%s,%d,%t",
		ledgerFieldEscaper.Replace(record.SymbolicName),
		ledgerFieldEscaper.Replace(record.Version),
		ledgerFieldEscaper.Replace(record.Path),
		record.StartLevel,
		record.Fragment,
	)
}

// DecodeLedger parses ledger content. Comment lines (#) and blank lines
// are dropped.
func DecodeLedger(content []byte) ([]types.BundleRecord, error) {
	var records []types.BundleRecord
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLedgerLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			log.Debug().Int("line", lineNo).Msg("dropping ledger comment")
			continue
		}
		record, err := ParseLedgerLine(line)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("ledger line %d is malformed", lineNo)).
				WithCause(err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read ledger").
			WithCause(err)
	}
	return records, nil
}

// EncodeLedger serialises a ledger in write order, one record per line.
func EncodeLedger(ledger types.Ledger) []byte {
	var buf bytes.Buffer
	for _, record := range ledger.Records() {
		buf.WriteString(FormatLedgerLine(record))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
