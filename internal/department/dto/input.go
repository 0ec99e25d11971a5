package dto

type CreateDepartmentInput struct {
	Name string
}

type UpdateDepartmentInput struct {
	ID   int64
	Name string
}
