package cellstore

import "github.com/go-orcus/orcus/orcuserr"

func errInvalidSerial(serial float64) error {
	return orcuserr.NewInvalidArgument("invalid date serial %v", serial)
}

func errNegativeSerial(serial float64) error {
	return orcuserr.NewInvalidArgument("negative date serial %v not supported", serial)
}
