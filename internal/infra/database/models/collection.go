package models

import (
	"time"
)

// Collection stores one collection document per (owner, collection_id).
// Document is the canonical v3 JSON; access flags live in columns so reads
// can gate without decoding the body.
type Collection struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Owner        string    `json:"owner" gorm:"type:text;index:collection_owner_id,unique,priority:1"`
	CollectionID string    `json:"collectionID" gorm:"type:text;index:collection_owner_id,unique,priority:2"`
	IsPublic     bool      `json:"isPublic" gorm:"type:boolean;not null;default:false"`
	Document     string    `json:"document" gorm:"type:text"`
	CDate        time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate        time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Item stores one manifest document per (owner, collection_id, item_id).
// ItemID may be empty on rows imported from listings that predate recorded
// ids; readers recover the id from ManifestURL.
type Item struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Owner        string    `json:"owner" gorm:"type:text;index:item_owner_coll_id,unique,priority:1"`
	CollectionID string    `json:"collectionID" gorm:"type:text;index:item_owner_coll_id,unique,priority:2"`
	ItemID       string    `json:"itemID" gorm:"type:text;index:item_owner_coll_id,unique,priority:3"`
	ManifestURL  string    `json:"manifestURL" gorm:"type:text"`
	Label        string    `json:"label" gorm:"type:text"`
	Thumbnail    string    `json:"thumbnail" gorm:"type:text"`
	Document     string    `json:"document" gorm:"type:text"`
	CDate        time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate        time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
