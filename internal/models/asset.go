package models

import "time"

// AssetKind distinguishes the two media families the asset library stores.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetVideo AssetKind = "video"
)

// Asset is one content-addressed media record. Exactly one Asset exists
// per distinct content hash; UsedIn lists the ids of the projects that
// currently reference it.
type Asset struct {
	ID        string    `json:"id"                 bson:"_id"`
	URL       string    `json:"url"                bson:"url"`
	Path      string    `json:"path"               bson:"path"`
	Kind      AssetKind `json:"type"               bson:"type"`
	Size      int64     `json:"size"               bson:"size"`
	Hash      string    `json:"hash"               bson:"hash"`
	FileName  string    `json:"fileName"           bson:"fileName"`
	MimeType  string    `json:"mimeType"           bson:"mimeType"`
	Width     int       `json:"width,omitempty"    bson:"width,omitempty"`
	Height    int       `json:"height,omitempty"   bson:"height,omitempty"`
	CreatedAt time.Time `json:"createdAt"          bson:"createdAt"`
	UsedIn    []string  `json:"usedIn"             bson:"usedIn"`
}

// InUse reports whether any project still references the asset.
func (a *Asset) InUse() bool { return len(a.UsedIn) > 0 }
