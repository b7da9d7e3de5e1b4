package services

import "errors"

var ErrInvalidFieldName = errors.New("invalid field name")
