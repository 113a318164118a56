// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/fawkesrobotics/go-pddl/pkg/pddl"
	"github.com/fawkesrobotics/go-pddl/pkg/pddl/ast"
	"github.com/fawkesrobotics/go-pddl/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pddl-check",
	Short: "Check PDDL domains and problems for syntax and semantic errors.",
	Long: `Check PDDL domains and problems for syntax and semantic errors.
	Domains and problems are parsed into a structured representation,
	with semantic checks (typing, predicate signatures, constant and
	parameter resolution) applied along the way.`,
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		domainPath := getString(cmd, "domain")
		problemPath := getString(cmd, "problem")
		//
		if domainPath == "" && problemPath == "" {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			domain  *ast.Domain
			success = true
		)
		//
		if domainPath != "" {
			domain = checkDomain(domainPath, getFlag(cmd, "print"))
			success = success && domain != nil
		}
		//
		if problemPath != "" {
			var check *ast.Domain
			// Cross-validation requires a successfully parsed domain.
			if getFlag(cmd, "check-problem") {
				check = domain
			}
			//
			success = success && checkProblem(problemPath, check, getFlag(cmd, "print"))
		}
		//
		if !success {
			os.Exit(1)
		}
	},
}

// Execute runs the root command, exiting with status 1 if it fails.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().String("domain", "", "the path to the domain file")
	rootCmd.Flags().String("problem", "", "the path to the problem file")
	rootCmd.Flags().Bool("check-problem", false, "cross-validate the problem against the domain")
	rootCmd.Flags().Bool("print", false, "print the parsed representation")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
}

// checkDomain parses a given domain file, reporting warnings and errors.  On
// success the parsed domain is returned, otherwise nil.
func checkDomain(filename string, print bool) *ast.Domain {
	srcfile, err := source.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read domain: %s\n", err)
		return nil
	}
	//
	domain, warnings, perr := pddl.ParseDomainSource(srcfile)
	reportWarnings(warnings)
	//
	if perr != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse domain:\n%s", perr)
		return nil
	}
	//
	fmt.Printf("Successfully parsed domain %s\n", filename)
	//
	if print {
		fmt.Println(domain.String())
	}
	//
	return &domain
}

// checkProblem parses a given problem file, cross-validating it against a
// given domain (if any), and reporting warnings and errors.
func checkProblem(filename string, domain *ast.Domain, print bool) bool {
	srcfile, err := source.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read problem: %s\n", err)
		return false
	}
	//
	var (
		problem  ast.Problem
		warnings []string
		perr     error
	)
	//
	if domain != nil {
		problem, warnings, perr = pddl.ParseProblemWithDomain(srcfile, domain)
	} else {
		problem, warnings, perr = pddl.ParseProblemSource(srcfile)
	}
	//
	reportWarnings(warnings)
	//
	if perr != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse problem:\n%s", perr)
		return false
	}
	//
	fmt.Printf("Successfully parsed problem %s\n", filename)
	//
	if print {
		fmt.Println(problem.String())
	}
	//
	return true
}

func reportWarnings(warnings []string) {
	for _, warning := range warnings {
		log.Warnf("PDDL-Parser: %s", warning)
	}
}
