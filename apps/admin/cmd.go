package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db      *sqlx.DB
	stuRepo student.Repository
	catRepo catalog.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args]                      - run DB migrations (goose commands)")
	fmt.Println("  addstudent -username USERNAME -email EMAIL [-name NAME] - add or update a student")
	fmt.Println("  resetpassword -username USERNAME|EMAIL      - reset a student's password")
	fmt.Println("  loadcatalog -file FILE                      - upsert topics/lessons/quizzes from a JSON catalog")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentUname := addStudentCmd.String("username", "", "The student's username. The password will be prompted next.")
	addStudentEmail := addStudentCmd.String("email", "", "The student's email.")
	addStudentName := addStudentCmd.String("name", "", "The student's full name (optional).")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The student's username or email. The password will be prompted next.")

	loadCatalogCmd := flag.NewFlagSet("loadcatalog", flag.ExitOnError)
	loadCatalogFile := loadCatalogCmd.String("file", "", "Path to the JSON catalog file.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentUname == "" || *addStudentEmail == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentUname, *addStudentEmail, *addStudentName, string(pwd))
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, string(pwd))
	case "loadcatalog":
		if err := loadCatalogCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loadCatalogFile == "" {
			loadCatalogCmd.Usage()
			return errHelp
		}
		return cli.loadCatalog(*loadCatalogFile)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() ([]byte, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	return pwd, err
}
