package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/upper/db/v4"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/common/logger"
)

// SimilarityIndex writes finished search runs into the database. Every run
// is appended next to earlier ones and is keyed by its run id.
type SimilarityIndex struct {
	database *Database
	session  db.Session
}

func NewSimilarityIndex(database *Database) *SimilarityIndex {
	return &SimilarityIndex{
		database: database,
	}
}

func (s *SimilarityIndex) DoInTransaction(fn func(session db.Session) error) error {
	return s.database.Session().Tx(fn)
}

func (s *SimilarityIndex) ExportResult(result *apitype.SearchResult) error {
	start := time.Now()
	runId := result.RunId.String()
	logger.Info.Printf("Exporting run %s with %d images", runId, len(result.Hashes))

	err := s.DoInTransaction(func(session db.Session) error {
		if err := s.StartRecreateSimilarImageIndex(session); err != nil {
			return err
		}

		if _, err := session.Collection("run").Insert(&Run{
			Id:          runId,
			CreatedTime: start,
			ImageSize:   result.Config.ImageSize,
			HashSize:    result.Config.HashSize,
			Threshold:   result.Threshold,
		}); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		imageIdsByPath := map[string]int64{}
		for _, hashed := range result.Hashes {
			if id, err := s.addImage(runId, hashed); err != nil {
				return err
			} else {
				imageIdsByPath[hashed.ImageFile.Path()] = id
			}
		}

		for _, hashed := range result.Hashes {
			imageId := imageIdsByPath[hashed.ImageFile.Path()]
			for rank, match := range result.SimilarTo(hashed.ImageFile.Path()) {
				similarId, found := imageIdsByPath[match.ImageFile.Path()]
				if !found {
					return fmt.Errorf("similar image %s was not hashed", match.ImageFile.Path())
				}
				if err := s.AddSimilarImage(runId, imageId, similarId, rank, match.Distance); err != nil {
					return err
				}
			}
		}

		for _, imageError := range result.Errors {
			if _, err := session.Collection("image_error").Insert(&ImageError{
				RunId:   runId,
				Path:    imageError.ImageFile.Path(),
				Kind:    apitype.ErrorKind(imageError.Err),
				Message: imageError.Error(),
			}); err != nil {
				return fmt.Errorf("insert image error: %w", err)
			}
		}

		return s.EndRecreateSimilarImageIndex()
	})
	if err != nil {
		return fmt.Errorf("export run %s: %w", runId, err)
	}

	logger.Debug.Printf(" - Exporting run: %s", time.Since(start))
	return nil
}

func (s *SimilarityIndex) addImage(runId string, hashed *apitype.HashedImage) (int64, error) {
	imageFile := hashed.ImageFile
	res, err := s.session.Collection("image").Insert(&Image{
		RunId:     runId,
		Path:      imageFile.Path(),
		FileName:  imageFile.FileName(),
		Directory: imageFile.Directory(),
		Hash:      hashed.Hash.String(),
	})
	if err != nil {
		return 0, fmt.Errorf("insert image %s: %w", imageFile.Path(), err)
	}
	return idToInt64(res.ID())
}

func (s *SimilarityIndex) StartRecreateSimilarImageIndex(session db.Session) error {
	s.session = session

	logger.Trace.Print("Dropping index")
	if _, err := s.session.SQL().Exec("DROP INDEX IF EXISTS image_similar_uq"); err != nil {
		return err
	} else {
		return nil
	}
}

func (s *SimilarityIndex) EndRecreateSimilarImageIndex() error {
	defer func() {
		s.session = nil
	}()

	start := time.Now()
	logger.Trace.Print("Creating indices for similar images")
	if _, err := s.session.SQL().Exec("CREATE UNIQUE INDEX image_similar_uq ON image_similar(image_id, similar_image_id)"); err != nil {
		return err
	}

	logger.Trace.Printf(" - Creating index: %s", time.Since(start))
	return nil
}

func (s *SimilarityIndex) AddSimilarImage(runId string, imageId int64, similarId int64, rank int, distance int) error {
	_, err := s.session.Collection("image_similar").Insert(&ImageSimilar{
		RunId:          runId,
		ImageId:        imageId,
		SimilarImageId: similarId,
		Rank:           rank,
		Distance:       distance,
	})
	return err
}

func (s *SimilarityIndex) GetRun(runId uuid.UUID) (*Run, error) {
	var run Run
	if err := s.database.Session().Collection("run").Find(db.Cond{"id": runId.String()}).One(&run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetSimilarImages returns the paths similar to path in the given run, in
// rank order.
func (s *SimilarityIndex) GetSimilarImages(runId uuid.UUID, path string) ([]string, error) {
	var source Image
	if err := s.database.Session().Collection("image").
		Find(db.Cond{"run_id": runId.String(), "path": path}).
		One(&source); err != nil {
		return nil, err
	}

	var images []Image
	if err := s.database.Session().SQL().
		Select("image.*").
		From("image").
		Join("image_similar").On("image_similar.similar_image_id = image.id").
		Where("image_similar.image_id = ?", source.Id).
		OrderBy("image_similar.rank").
		All(&images); err != nil {
		return nil, err
	}

	paths := make([]string, len(images))
	for i, image := range images {
		paths[i] = image.Path
	}
	return paths, nil
}

func (s *SimilarityIndex) GetIndexSize(runId uuid.UUID) (uint64, error) {
	return s.database.Session().Collection("image_similar").Find(db.Cond{"run_id": runId.String()}).Count()
}

func (s *SimilarityIndex) GetErrors(runId uuid.UUID) ([]ImageError, error) {
	var errors []ImageError
	if err := s.database.Session().Collection("image_error").
		Find(db.Cond{"run_id": runId.String()}).
		OrderBy("path").
		All(&errors); err != nil {
		return nil, err
	}
	return errors, nil
}

func idToInt64(id interface{}) (int64, error) {
	switch value := id.(type) {
	case int64:
		return value, nil
	case int:
		return int64(value), nil
	}
	return 0, fmt.Errorf("unexpected id type %T", id)
}
