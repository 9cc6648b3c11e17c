package nav

import (
	"fmt"
	"io"
)

type NotFoundPage struct{}

func (NotFoundPage) Render(w io.Writer) error {
	_, err := fmt.Fprintln(w, "The page does not exist.")
	return err
}

type LoginPage struct{}

func (LoginPage) Render(w io.Writer) error {
	_, err := fmt.Fprintln(w, "You are not signed in. Run the login command first.")
	return err
}
