package db

import (
	"encoding/json"
	"time"
)

// Translation maps translations: one contributed English→target sentence pair.
type Translation struct {
	TranslationID      int64     `gorm:"column:translation_id;primaryKey;autoIncrement"`
	TranslationUUID    string    `gorm:"column:translation_uuid;type:uuid;not null;unique"`
	TranslatorAuthID   string    `gorm:"column:translator_auth_id;type:text;not null"`
	Language           string    `gorm:"column:language;type:text;not null"`
	EnglishSentence    string    `gorm:"column:english_sentence;type:text;not null"`
	TranslatedSentence string    `gorm:"column:translated_sentence;type:text;not null"`
	Source             string    `gorm:"column:source;type:text;not null"`
	Timestamp          time.Time `gorm:"column:timestamp;type:timestamptz;not null;default:now()"`
	Verified           bool      `gorm:"column:verified;type:boolean;not null;default:false"`
	VerifiedBy         *string   `gorm:"column:verified_by;type:text"`
	Status             *string   `gorm:"column:status;type:text"`
	RejectedBy         *string   `gorm:"column:rejected_by;type:text"`
}

func (Translation) TableName() string { return "translations" }

// PendingSentence maps pending_sentences: English sentences awaiting
// translation. language_translated is a jsonb array with set semantics.
type PendingSentence struct {
	SentenceID          int64           `gorm:"column:sentence_id;primaryKey;autoIncrement"`
	SentenceUUID        string          `gorm:"column:sentence_uuid;type:uuid;not null;unique"`
	EnglishSentence     string          `gorm:"column:english_sentence;type:text;not null"`
	LanguagesTranslated json.RawMessage `gorm:"column:language_translated;type:jsonb;not null;default:'[]'"`
	Timestamp           time.Time       `gorm:"column:timestamp;type:timestamptz;not null;default:now()"`
}

func (PendingSentence) TableName() string { return "pending_sentences" }

// User maps users. firebaseuid carries no unique index; the registration
// surface never enforced uniqueness and this keeps that behavior observable.
type User struct {
	UserID      int64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	UserUUID    string    `gorm:"column:user_uuid;type:uuid;not null;unique"`
	FirebaseUID string    `gorm:"column:firebaseuid;type:text;not null"`
	Name        string    `gorm:"column:name;type:text;not null"`
	Role        string    `gorm:"column:role;type:text;not null;default:user"`
	Timestamp   time.Time `gorm:"column:timestamp;type:timestamptz;not null;default:now()"`
}

func (User) TableName() string { return "users" }

func autoMigrateModels() []any {
	return []any{
		&Translation{},
		&PendingSentence{},
		&User{},
	}
}
