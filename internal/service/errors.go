package service

import "errors"

// Ошибки бизнес-уровня. Хендлеры маппят их в HTTP-статусы через errors.Is;
// наружу никогда не уходят "сырые" ошибки gorm или блоб-хранилища.
var (
	// ErrNotFound — файл или доступ не существует либо не принадлежит вызывающему.
	ErrNotFound = errors.New("not found")

	// ErrDenied — запрошенное действие не покрыто ни владением, ни активным доступом.
	ErrDenied = errors.New("access denied")

	// ErrShareExists — активный доступ для пары (файл, получатель) уже есть.
	ErrShareExists = errors.New("share already exists")

	// ErrInvalidArgument — некорректный запрос: неизвестное право, пустое имя и т.п.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidGrantee — получатель не существует или совпадает с владельцем.
	ErrInvalidGrantee = errors.New("invalid grantee")

	// ErrStorageUnavailable — временный отказ хранилища; запрос можно повторить целиком.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrLoginTaken — логин уже занят при регистрации.
	ErrLoginTaken = errors.New("login already taken")

	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
