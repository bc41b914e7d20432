// One-off: generate fresh keypairs and append their base-58 secret keys to
// the keys file. Prints the public addresses so they can be funded.
// Usage: go run ./cmd/keygen [count] [file]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gagliardetto/solana-go"
)

func main() {
	count := 1
	path := "wallets.txt"

	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "invalid count %q\n", os.Args[1])
			os.Exit(1)
		}
		count = n
	}
	if len(os.Args) > 2 {
		path = os.Args[2]
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", path, err)
		os.Exit(1)
	}
	defer file.Close()

	for i := 0; i < count; i++ {
		w := solana.NewWallet()
		if _, err := fmt.Fprintln(file, w.PrivateKey.String()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(w.PublicKey().String())
	}
}
