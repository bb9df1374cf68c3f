package question

import (
	"database/sql"
	"errors"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// Put stores the question and its alternatives in one transaction.
// Alternatives are replaced wholesale; their row order encodes the letter.
func (s *SQLStore) Put(q Question) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	_, err = tx.Exec(`INSERT INTO questions
		(id, owner_id, theme, learning_objective, difficulty, model, statement,
		 reference, correct_letter, expected_answer, score_distribution, explanation, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
		 theme=EXCLUDED.theme, learning_objective=EXCLUDED.learning_objective,
		 difficulty=EXCLUDED.difficulty, model=EXCLUDED.model, statement=EXCLUDED.statement,
		 reference=EXCLUDED.reference, correct_letter=EXCLUDED.correct_letter,
		 expected_answer=EXCLUDED.expected_answer, score_distribution=EXCLUDED.score_distribution,
		 explanation=EXCLUDED.explanation`,
		q.ID, q.OwnerID, q.Theme, q.LearningObjective, q.Difficulty, q.Model, q.Statement,
		q.Reference, q.CorrectLetter, q.ExpectedAnswer, q.ScoreDistribution, q.Explanation, q.CreatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM alternatives WHERE question_id=$1`, q.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM commands WHERE question_id=$1`, q.ID); err != nil {
		return err
	}
	for i, c := range q.Choices {
		if _, err := tx.Exec(`INSERT INTO alternatives (question_id, position, text, is_correct)
			VALUES ($1,$2,$3,$4)`, q.ID, i, c.Text, c.IsCorrect); err != nil {
			return err
		}
	}
	for i, c := range q.Commands {
		if _, err := tx.Exec(`INSERT INTO commands (question_id, position, text)
			VALUES ($1,$2,$3)`, q.ID, i, c.Text); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) Get(id, ownerID string) (Question, error) {
	row := s.db.QueryRow(`SELECT id, owner_id, theme, learning_objective, difficulty, model,
		statement, reference, correct_letter, expected_answer, score_distribution, explanation, created_at
		FROM questions WHERE id=$1 AND owner_id=$2`, id, ownerID)
	q, err := scanQuestion(row)
	if err != nil {
		return Question{}, err
	}
	if err := s.loadDetails(&q); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) ListByOwner(ownerID string) ([]Question, error) {
	rows, err := s.db.Query(`SELECT id, owner_id, theme, learning_objective, difficulty, model,
		statement, reference, correct_letter, expected_answer, score_distribution, explanation, created_at
		FROM questions WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := s.loadDetails(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *SQLStore) loadDetails(q *Question) error {
	rows, err := s.db.Query(`SELECT text, is_correct FROM alternatives
		WHERE question_id=$1 ORDER BY position`, q.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c Choice
		if err := rows.Scan(&c.Text, &c.IsCorrect); err != nil {
			return err
		}
		q.Choices = append(q.Choices, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	crows, err := s.db.Query(`SELECT text FROM commands
		WHERE question_id=$1 ORDER BY position`, q.ID)
	if err != nil {
		return err
	}
	defer crows.Close()
	for crows.Next() {
		var c Command
		if err := crows.Scan(&c.Text); err != nil {
			return err
		}
		q.Commands = append(q.Commands, c)
	}
	return crows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	err := row.Scan(&q.ID, &q.OwnerID, &q.Theme, &q.LearningObjective, &q.Difficulty, &q.Model,
		&q.Statement, &q.Reference, &q.CorrectLetter, &q.ExpectedAnswer, &q.ScoreDistribution,
		&q.Explanation, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, err
}
