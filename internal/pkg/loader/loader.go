package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/table"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var (
	ErrReadFile        = errors.New("read file")
	ErrDecode          = errors.New("decode table")
	ErrUnknownEncoding = errors.New("unknown encoding")
)

var bom = []byte("\uFEFF")

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// LoadFile читает разделенный запятыми файл в объявленной кодировке.
func LoadFile(path, encodingName string, schema domain.Schema) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadFile, path, err)
	}
	defer f.Close()

	t, err := Decode(f, encodingName, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode перекодирует поток в UTF-8 и разбирает CSV с заголовком.
// Байты, которые декодер заменил на U+FFFD, и заголовок без обязательных
// столбцов схемы считаются ошибкой кодировки: мусорный текст не
// пропускается дальше.
func Decode(r io.Reader, encodingName string, schema domain.Schema) (*table.Table, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("%w as %s: %w", ErrDecode, encodingName, err)
	}
	decoded = bytes.TrimPrefix(decoded, bom)

	if i := bytes.IndexRune(decoded, utf8.RuneError); i >= 0 {
		line := bytes.Count(decoded[:i], []byte("\n")) + 1
		return nil, fmt.Errorf("%w as %s: invalid byte sequence on line %d", ErrDecode, encodingName, line)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrDecode, schema.Name)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	if missing := schema.Missing(header); len(missing) > 0 {
		return nil, fmt.Errorf("%w as %s: %s header lacks columns %v", ErrDecode, encodingName, schema.Name, missing)
	}

	t, err := table.New(header, records[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if len(schema.Rename) > 0 {
		t, err = t.Rename(schema.Rename)
		if err != nil {
			return nil, fmt.Errorf("rename %s: %w", schema.Name, err)
		}
	}
	return t, nil
}
