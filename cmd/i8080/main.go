package main

import (
	"fmt"
	"os"

	"github.com/oisee/i8080emu/pkg/cpm"
	"github.com/oisee/i8080emu/pkg/cpu"
	"github.com/oisee/i8080emu/pkg/inst"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "i8080",
		Short: "Intel 8080 emulator core — run, disassemble, and CP/M-test 8080 binaries",
	}

	var loadAddr uint16
	var maxCycles int

	runCmd := &cobra.Command{
		Use:   "run [rom]",
		Short: "Load a ROM and run it for a bounded cycle budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := loadROM(args[0])
			if err != nil {
				return err
			}

			st := cpu.NewStepper()
			st.LoadProgram(rom, loadAddr)
			st.SetPC(loadAddr)
			st.Run(maxCycles)

			s := st.State
			fmt.Printf("PC=0x%04X SP=0x%04X A=0x%02X BC=0x%04X DE=0x%04X HL=0x%04X\n",
				s.PC, s.SP, s.A, s.BC(), s.DE(), s.HL())
			fmt.Printf("flags: S=%t Z=%t AC=%t P=%t C=%t\n", s.F.S, s.F.Z, s.F.AC, s.F.P, s.F.C)
			fmt.Printf("halted=%t interruptEnabled=%t\n", s.Halted, s.InterruptEnabled)
			return nil
		},
	}
	runCmd.Flags().Uint16Var(&loadAddr, "origin", 0x0000, "address to load the ROM at")
	runCmd.Flags().IntVar(&maxCycles, "max-cycles", 1_000_000, "cycle budget for the run")

	var disasmCount int

	disasmCmd := &cobra.Command{
		Use:   "disasm [rom]",
		Short: "Disassemble a binary starting at --origin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := loadROM(args[0])
			if err != nil {
				return err
			}

			mem := &cpu.Memory{}
			for i, b := range rom {
				addr := loadAddr + uint16(i)
				mem.Write(addr, b)
			}

			pc := loadAddr
			end := loadAddr + uint16(len(rom))
			for i := 0; i < disasmCount && pc < end; i++ {
				in, length := inst.Decode(mem, pc)
				fmt.Printf("%04X  %s\n", pc, inst.Disassemble(in))
				pc += uint16(length)
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint16Var(&loadAddr, "origin", 0x0000, "address the binary is mapped at")
	disasmCmd.Flags().IntVar(&disasmCount, "count", 1<<20, "maximum instructions to print")

	var cpmMaxCycles int

	cpmCmd := &cobra.Command{
		Use:   "cpm [rom]",
		Short: "Run a CP/M-convention test ROM and print its console output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := loadROM(args[0])
			if err != nil {
				return err
			}

			st := cpu.NewStepper()
			h := cpm.New()
			h.Load(st, rom)
			h.Run(st, cpmMaxCycles)

			fmt.Print(h.Output())
			if !st.State.Halted {
				return errors.Errorf("cycle budget of %d exhausted before halt", cpmMaxCycles)
			}
			return nil
		},
	}
	cpmCmd.Flags().IntVar(&cpmMaxCycles, "max-cycles", 100_000_000, "cycle budget for the run")

	rootCmd.AddCommand(runCmd, disasmCmd, cpmCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading ROM %s", path)
	}
	if len(data) == 0 {
		return nil, errors.Errorf("ROM %s is empty", path)
	}
	return data, nil
}
