package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"movieinfo/errs"
	"movieinfo/genre"
	"movieinfo/movie"
)

const (
	noGenresListed  = "(no genres listed)"
	fallbackGenre   = "Uncategorized"
	unknownDirector = "Unknown"
)

var titleYear = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)\s*$`)

type entry struct {
	Title       string
	Genre       string
	ReleaseDate time.Time
}

type columns struct {
	title  int
	genres int
}

// importer adds MovieLens rows through the catalog services, so rows that
// break a catalog rule are skipped instead of stored.
type importer struct {
	genres genre.Service
	movies movie.Service
	log    *logrus.Logger

	genreIDs map[string]int
}

func newImporter(genres genre.Service, movies movie.Service, log *logrus.Logger) *importer {
	return &importer{
		genres:   genres,
		movies:   movies,
		log:      log,
		genreIDs: make(map[string]int),
	}
}

// Import reads the CSV from r and returns how many movies were added.
// A limit of zero imports every row.
func (im *importer) Import(ctx context.Context, r io.Reader, limit int) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	cols, err := parseHeader(reader)
	if err != nil {
		return 0, err
	}

	added := 0
	for limit <= 0 || added < limit {
		if err := ctx.Err(); err != nil {
			return added, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return added, err
		}

		e, ok := parseRecord(record, cols)
		if !ok {
			im.log.WithField("record", record).Debug("skip unparsable row")
			continue
		}

		ok, err = im.add(ctx, e)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}

	return added, nil
}

func (im *importer) add(ctx context.Context, e entry) (bool, error) {
	genreID, err := im.genreID(ctx, e.Genre)
	if err != nil {
		return false, err
	}

	_, err = im.movies.Add(ctx, movie.Movie{
		GenreID:     genreID,
		Title:       e.Title,
		Director:    unknownDirector,
		ReleaseDate: e.ReleaseDate,
	})
	switch errs.ErrorCode(err) {
	case "":
		return true, nil
	case errs.ECONFLICT, errs.EINVALID:
		im.log.WithError(err).WithField("title", e.Title).Debug("skip movie")
		return false, nil
	default:
		return false, fmt.Errorf("add movie %q: %w", e.Title, err)
	}
}

// genreID returns the id of the genre titled title, adding it when missing.
func (im *importer) genreID(ctx context.Context, title string) (int, error) {
	if id, ok := im.genreIDs[title]; ok {
		return id, nil
	}

	g, err := im.genres.Add(ctx, genre.Genre{Title: title})
	if errors.Is(err, genre.ErrDuplicateTitle) {
		g, err = im.findGenre(ctx, title)
	}
	if err != nil {
		return 0, fmt.Errorf("add genre %q: %w", title, err)
	}

	im.genreIDs[title] = g.ID
	return g.ID, nil
}

func (im *importer) findGenre(ctx context.Context, title string) (genre.Genre, error) {
	found, err := im.genres.Search(ctx, title)
	if err != nil {
		return genre.Genre{}, err
	}
	for _, g := range found {
		if g.Title == title {
			return g, nil
		}
	}
	return genre.Genre{}, genre.ErrGenreNotFound
}

func parseHeader(reader *csv.Reader) (columns, error) {
	header, err := reader.Read()
	if err != nil {
		return columns{}, err
	}

	cols := columns{title: -1, genres: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			cols.title = i
		case "genres":
			cols.genres = i
		}
	}
	if cols.title == -1 || cols.genres == -1 {
		return columns{}, errors.New("missing required columns in csv header")
	}

	return cols, nil
}

func parseRecord(record []string, cols columns) (entry, bool) {
	if cols.title >= len(record) || cols.genres >= len(record) {
		return entry{}, false
	}

	title, year, ok := splitTitleYear(record[cols.title])
	if !ok {
		return entry{}, false
	}

	return entry{
		Title:       title,
		Genre:       firstGenre(record[cols.genres]),
		ReleaseDate: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
	}, true
}

// splitTitleYear splits "Heat (1995)" into its title and year.
func splitTitleYear(raw string) (string, int, bool) {
	m := titleYear.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", 0, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], year, true
}

func firstGenre(raw string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(raw), "|")
	first = strings.TrimSpace(first)
	if first == "" || first == noGenresListed {
		return fallbackGenre
	}
	return first
}
