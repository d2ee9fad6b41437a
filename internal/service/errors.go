package service

import "errors"

var errStoreNotConfigured = errors.New("document store not configured")
