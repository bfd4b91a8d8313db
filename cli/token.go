package cli

import (
	"fmt"
	"io"

	"github.com/evergreen-ci/cirrus"
	"github.com/pkg/errors"
)

// PrintAccessToken writes the access token if the result has one and an error
// message otherwise.
func PrintAccessToken(w io.Writer, res *cirrus.AuthResult) error {
	var err error
	if res != nil && res.AccessToken != "" {
		_, err = fmt.Fprintf(w, "Access token: %s\n", res.AccessToken)
	} else {
		_, err = fmt.Fprintln(w, "An error occurred while getting an access token")
	}
	return errors.Wrap(err, "writing access token")
}
