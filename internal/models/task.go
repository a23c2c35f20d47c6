package models

type Task struct {
	ID         int64   `json:"id"`
	Texto      string  `json:"texto"`
	Prazo      *string `json:"prazo"`
	Prioridade *string `json:"prioridade"`
	Concluida  bool    `json:"concluida"`
	UsuarioID  string  `json:"usuario_id"`
}

// DateLayout is the wire and storage format of Task.Prazo.
const DateLayout = "2006-01-02"

type CreateTaskRequest struct {
	Texto      string  `json:"texto" validate:"required"`
	Prazo      *string `json:"prazo" validate:"omitempty,datetime=2006-01-02"`
	Prioridade *string `json:"prioridade" validate:"omitempty,max=50"`
}

type DeleteTaskResponse struct {
	Message     string `json:"message"`
	DeletedTask *Task  `json:"deletedTask"`
}
