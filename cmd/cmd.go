// Package cmd is the interactive shell surface of the app. Commands are
// grouped into guest, user and common sets; signing in swaps the guest set
// out for the user set, the way the screens gate navigation in the mobile
// app.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	ishell "github.com/abiosoft/ishell"
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"

	"github.com/mywatt/mywatt/client"
	"github.com/mywatt/mywatt/lib/utils"
	"github.com/mywatt/mywatt/models"
)

// guestCommands holds the commands available before signing in.
var guestCommands []Command

// userCommands holds the commands available only to signed-in users.
var userCommands []Command

// commonCommands holds the commands available regardless of login state.
var commonCommands []Command

// loggedIn indicates whether a user is currently signed in.
var loggedIn bool

// shell is the interactive shell instance the commands are registered on.
var shell *ishell.Shell

// api is the data-access client every command goes through.
var api *client.Client

// highlight colors the parts of the output worth noticing.
var highlight = color.New(color.FgGreen, color.Bold).SprintFunc()

// The Command struct defines a user command in the system. Each command has
// a Name, a Desc (short for description), and a Func (the function to
// execute when the command is called).
type Command struct {
	Name string
	Desc string
	Func func(c *ishell.Context)
}

// reportError surfaces a failed operation according to its class: network
// failures get the generic connectivity message, everything else is shown
// as the server or precondition reported it.
func reportError(err error) {
	if client.IsNetwork(err) {
		utils.PrintError("please check your connection and try again")
		return
	}
	utils.PrintError(err.Error())
}

// readNonEmpty prompts until the user enters a non-empty line.
func readNonEmpty(c *ishell.Context, prompt string) string {
	for {
		c.Print(prompt)
		value := strings.TrimSpace(c.ReadLine())
		if value != "" {
			return value
		}
		c.Println("Value cannot be empty.")
	}
}

// readInt prompts until the user enters a whole number.
func readInt(c *ishell.Context, prompt string) int64 {
	for {
		c.Print(prompt)
		value := strings.TrimSpace(c.ReadLine())
		n, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return n
		}
		c.Println("Please enter a number.")
	}
}

// readYesNo prompts until the user answers yes or no.
func readYesNo(c *ishell.Context, prompt string) bool {
	for {
		c.Print(prompt)
		response := strings.ToLower(strings.TrimSpace(c.ReadLine()))
		if response == "yes" {
			return true
		}
		if response == "no" {
			return false
		}
		c.Println("Invalid response. Please type 'yes' or 'no'.")
	}
}

func switchToUserCommands() {
	loggedIn = true
	for _, command := range guestCommands {
		shell.DeleteCmd(command.Name)
	}
	addCommands(shell, userCommands)
}

func switchToGuestCommands() {
	loggedIn = false
	for _, command := range userCommands {
		shell.DeleteCmd(command.Name)
	}
	addCommands(shell, guestCommands)
}

// Init wires the shell to the given client and registers all commands.
func Init(c *client.Client) {
	api = c
	shell = ishell.New()

	guestCommands = []Command{
		{
			Name: "login",
			Desc: "Sign in to your account",
			Func: func(c *ishell.Context) {
				var email, password string
				for {
					c.Print("Enter Email: ")
					email = c.ReadLine()
					if utils.ValidateEmail(email) {
						break
					}
					c.Println("Email is not valid.")
				}
				for {
					c.Print("Enter Password: ")
					password = c.ReadPassword()
					if len(password) > 0 {
						break
					}
					c.Println("Password cannot be empty.")
				}

				resp, err := api.Login(context.Background(), email, password)
				if err != nil {
					reportError(err)
					return
				}
				c.Println("Welcome " + resp.Name + ", you are now signed in.")
				c.Println("Use the 'houses' command to pick your house.")
				switchToUserCommands()
			},
		},
		{
			Name: "register",
			Desc: "Create a new account",
			Func: func(c *ishell.Context) {
				name := readNonEmpty(c, "Enter Name: ")
				var email, password string
				for {
					c.Print("Enter Email: ")
					email = c.ReadLine()
					if utils.ValidateEmail(email) {
						break
					}
					c.Println("Email is not valid.")
				}
				for {
					c.Print("Enter Password: ")
					password = c.ReadPassword()
					if utils.ValidatePassword(password) {
						c.Print("Confirm Password: ")
						if password == c.ReadPassword() {
							break
						}
						c.Println("Passwords do not match. Please try again.")
					} else {
						c.Println("Password must be at least 8 characters and contain both letters and numbers.")
					}
				}
				gender := readNonEmpty(c, "Enter Gender: ")
				dob := readNonEmpty(c, "Enter Date of Birth (YYYY-MM-DD): ")
				role := models.RoleHomeUser
				if readYesNo(c, "Register as a home manager? (yes/no): ") {
					role = models.RoleHomeManager
				}

				err := api.Register(context.Background(), models.RegisterRequest{
					Name:        name,
					Email:       email,
					Password:    password,
					Gender:      gender,
					DateOfBirth: dob,
					Role:        role,
				})
				if err != nil {
					reportError(err)
					return
				}
				c.Println("Account created successfully. Use 'login' to sign in.")
			},
		},
		{
			Name: "forgotpassword",
			Desc: "Reset your account password",
			Func: func(c *ishell.Context) {
				var email string
				for {
					c.Print("Enter Email: ")
					email = c.ReadLine()
					if utils.ValidateEmail(email) {
						break
					}
					c.Println("Email is not valid.")
				}
				if err := api.ResetPassword(context.Background(), email); err != nil {
					reportError(err)
					return
				}
				c.Println("Password reset instructions have been sent to your email.")
			},
		},
	}

	userCommands = append(houseCommands(), deviceCommands()...)
	userCommands = append(userCommands, energyCommands()...)
	userCommands = append(userCommands,
		Command{
			Name: "signout",
			Desc: "Sign out from your account",
			Func: func(c *ishell.Context) {
				api.SignOut()
				c.Println("You are now signed out.")
				switchToGuestCommands()
			},
		},
		Command{
			Name: "deletemyacc",
			Desc: "Delete your account",
			Func: func(c *ishell.Context) {
				if !readYesNo(c, "Are you sure you want to delete your account? (yes/no): ") {
					return
				}
				if err := api.DeleteAccount(context.Background()); err != nil {
					reportError(err)
					return
				}
				c.Println("Account deleted successfully.")
				switchToGuestCommands()
			},
		},
	)

	commonCommands = []Command{
		{
			Name: "exit",
			Desc: "Exit the application",
			Func: func(c *ishell.Context) {
				fmt.Println("Goodbye!")
				os.Exit(0)
			},
		},
	}

	// The help command is created separately to avoid the cyclic dependency
	commonCommands = append(commonCommands, Command{
		Name: "help",
		Desc: "List available commands",
		Func: func(c *ishell.Context) {
			c.Println("Available commands:")
			if loggedIn {
				for _, command := range userCommands {
					c.Println("  |-- '" + command.Name + "' : " + command.Desc)
				}
			} else {
				for _, command := range guestCommands {
					c.Println("  |-- '" + command.Name + "' : " + command.Desc)
				}
			}
			for _, command := range commonCommands {
				c.Println("  |-- '" + command.Name + "' : " + command.Desc)
			}
			c.Println()
		},
	})
}

// addCommands registers the given commands on the shell.
func addCommands(shell *ishell.Shell, commands []Command) {
	for _, command := range commands {
		shell.AddCmd(&ishell.Cmd{
			Name: command.Name,
			Help: "Command: " + command.Name,
			Func: command.Func,
		})
	}
}

// Execute welcomes the user and runs the shell. A session persisted from a
// previous run drops the user straight into the signed-in command set.
func Execute() {
	shell.Println()
	figure.NewFigure("MyWatt", "basic", true).Print()
	shell.Println("Welcome to MyWatt -- the home energy monitor CLI. Type 'help' to see a list of commands.")

	addCommands(shell, commonCommands)
	if api.Session().UserID() != "" {
		loggedIn = true
		addCommands(shell, userCommands)
		shell.Println("Signed in as " + api.Session().Name() + ".")
		if name := api.Session().HouseName(); name != "" {
			shell.Println("Selected house: " + highlight(name))
		}
	} else {
		addCommands(shell, guestCommands)
	}

	shell.Run()
}
