package main

import "github.com/zostay/go-vcard/tools/vcf/cmd"

func main() {
	cmd.Execute()
}
