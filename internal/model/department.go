package model

type Department struct {
	BaseModel
	Name string `db:"name"`
}
