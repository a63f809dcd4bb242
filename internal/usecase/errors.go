package usecase

import "errors"

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//422 入力は形になっているが業務ルール違反
	ErrUnprocessable = errors.New("unprocessable")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//403 権限
	ErrForbidden = errors.New("forbidden")
	//404
	ErrNotFound = errors.New("not found")
	//409 競合
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)
